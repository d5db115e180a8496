package config

import "github.com/caarlos0/env/v11"

// BotConfig drives cmd/dumb-bot, which plays a table-web instance over its
// websocket.
type BotConfig struct {
	WSURL string `env:"WS_URL" envDefault:"ws://localhost:8090/ws"`
	Hands int    `env:"BOT_HANDS" envDefault:"10"`
	Seed  int64  `env:"BOT_SEED" envDefault:"0"`
}

func LoadBot() (BotConfig, error) {
	var cfg BotConfig
	err := env.Parse(&cfg)
	return cfg, err
}
