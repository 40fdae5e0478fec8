package main

import (
	"context"
	"time"

	"github.com/quartzlab/discordkit/internal/entity"
	"github.com/quartzlab/discordkit/internal/gateway"
	"github.com/quartzlab/discordkit/internal/rest"
	"github.com/quartzlab/discordkit/pkg/logger"
	"github.com/quartzlab/discordkit/pkg/xcontext"
)

// pingSink answers "!ping" and logs session lifecycle events. REST calls run
// on their own goroutine so the gateway loop is never blocked.
type pingSink struct {
	gateway.NopSink

	transport *rest.Transport
	logger    logger.Logger
}

func (p *pingSink) Ready(self *entity.User) {
	if self != nil {
		p.logger.Infof("Logged in as %s", self.Tag())
	}
}

func (p *pingSink) GuildCreate(g *entity.Guild) {
	p.logger.Infof("Guild available: %s (%d channels)", g.Name, len(g.ChannelIDs))
}

func (p *pingSink) MessageCreate(m *entity.Message) {
	if m.Author == nil || m.Author.Bot || m.Content != "!ping" {
		return
	}

	channelID := m.ChannelID
	go func() {
		ctx := xcontext.WithLogger(context.Background(), p.logger)
		if _, err := p.transport.CreateMessage(ctx, channelID, "pong"); err != nil {
			p.logger.Warnf("Cannot answer ping in channel %s: %v", channelID, err)
		}
	}()
}

func (p *pingSink) ActionRateLimited(resetAt time.Time) {
	p.logger.Warnf("A REST action was throttled, bucket resets at %v", resetAt)
}

func (p *pingSink) ShutdownRequested() {
	p.logger.Infof("Session closed")
}
