package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type WebConfig struct {
	HTTPAddr     string        `env:"HTTP_ADDR" envDefault:":8090"`
	PingInterval time.Duration `env:"STREAM_PING_INTERVAL" envDefault:"15s"`
	LogWindow    int           `env:"LOG_WINDOW" envDefault:"12"`
}

func LoadWeb() (WebConfig, error) {
	var cfg WebConfig
	err := env.Parse(&cfg)
	return cfg, err
}
