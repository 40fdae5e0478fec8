package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Duration accepts the human form ("30s", "2m") in both TOML files and
// environment variables.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	*d = Duration(v)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Configs struct {
	Env      string `toml:"env" env:"DISCORDKIT_ENV"`
	LogLevel string `toml:"log_level" env:"DISCORDKIT_LOG_LEVEL"`

	Bot     BotConfigs     `toml:"bot"`
	API     APIConfigs     `toml:"api"`
	Gateway GatewayConfigs `toml:"gateway"`
}

type BotConfigs struct {
	// Token is the bot credential. Where it comes from (file, env var,
	// secret store) is the operator's choice.
	Token string `toml:"token" env:"DISCORDKIT_BOT_TOKEN"`
}

type APIConfigs struct {
	Timeout Duration `toml:"timeout" env:"DISCORDKIT_API_TIMEOUT"`
}

type GatewayConfigs struct {
	Compress bool `toml:"compress" env:"DISCORDKIT_GATEWAY_COMPRESS"`
}

// Load reads the TOML file if present, then lets environment variables
// override it.
func Load(path string) (Configs, error) {
	cfg := Configs{
		Env:      "production",
		LogLevel: "INFO",
		API: APIConfigs{
			Timeout: Duration(30 * time.Second),
		},
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Configs{}, err
	}

	return cfg, nil
}
