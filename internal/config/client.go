package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

type ClientConfig struct {
	ServerURL      string        `env:"GAME_SERVER_URL" envDefault:"http://localhost:5000"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

func LoadClient() (ClientConfig, error) {
	var cfg ClientConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	u, err := url.Parse(cfg.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return cfg, fmt.Errorf("invalid GAME_SERVER_URL %q", cfg.ServerURL)
	}
	if cfg.RequestTimeout <= 0 {
		return cfg, fmt.Errorf("invalid REQUEST_TIMEOUT %s", cfg.RequestTimeout)
	}
	return cfg, nil
}
