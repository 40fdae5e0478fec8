package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/quartzlab/discordkit/config"
	"github.com/quartzlab/discordkit/internal/gateway"
	"github.com/quartzlab/discordkit/internal/ratelimit"
	"github.com/quartzlab/discordkit/internal/rest"
	"github.com/quartzlab/discordkit/internal/state"
	"github.com/quartzlab/discordkit/pkg/logger"
	"github.com/quartzlab/discordkit/pkg/xcontext"
)

type srv struct {
	configs config.Configs
	logger  logger.Logger

	governor  *ratelimit.Governor
	transport *rest.Transport
	state     *state.State
	session   *gateway.Session
}

func (s *srv) loadConfig(ct *cli.Context) error {
	cfg, err := config.Load(ct.String("config"))
	if err != nil {
		return err
	}

	if cfg.Bot.Token == "" {
		return errors.New("a bot token is required (set DISCORDKIT_BOT_TOKEN or bot.token)")
	}

	s.configs = cfg
	return nil
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger(logger.Level(s.configs.LogLevel))
}

func (s *srv) loadTransport() {
	s.governor = ratelimit.NewGovernor()
	s.transport = rest.NewTransport(s.configs.Bot.Token, s.governor)
}

func (s *srv) loadSession() {
	s.state = state.New()
	s.session = gateway.NewSession(
		s.configs.Bot.Token,
		&pingSink{transport: s.transport, logger: s.logger},
		s.state,
		s.transport,
	)
	s.session.SetCompress(s.configs.Gateway.Compress)
}

func (s *srv) run(ct *cli.Context) error {
	if err := s.loadConfig(ct); err != nil {
		return err
	}
	s.loadLogger()
	s.loadTransport()
	s.loadSession()

	ctx := xcontext.WithLogger(context.Background(), s.logger)
	ctx = xcontext.WithHTTPClient(ctx, &http.Client{Timeout: s.configs.API.Timeout.Std()})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		s.logger.Infof("Shutting down")
		s.session.Stop()
	}()

	s.logger.Infof("Starting the gateway session")
	return s.session.Start(ctx)
}
