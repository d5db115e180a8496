package config

import (
	"testing"
	"time"
)

func TestLoadAppDefaults(t *testing.T) {
	cfg, err := LoadApp()
	if err != nil {
		t.Fatalf("LoadApp() error = %v", err)
	}
	if cfg.Web.HTTPAddr != ":8090" || cfg.Web.PingInterval != 15*time.Second || cfg.Web.LogWindow != 12 {
		t.Fatalf("unexpected web defaults: %+v", cfg.Web)
	}
	if cfg.Cards.BackURL != DefaultCardBackURL || !cfg.Cards.Artwork {
		t.Fatalf("unexpected card defaults: %+v", cfg.Cards)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoadAppPropagatesClientError(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "0s")
	if _, err := LoadApp(); err == nil {
		t.Fatal("expected error for zero request timeout")
	}
}

func TestLoadBotOverrides(t *testing.T) {
	t.Setenv("WS_URL", "ws://127.0.0.1:9999/ws")
	t.Setenv("BOT_HANDS", "3")
	cfg, err := LoadBot()
	if err != nil {
		t.Fatalf("LoadBot() error = %v", err)
	}
	if cfg.WSURL != "ws://127.0.0.1:9999/ws" || cfg.Hands != 3 || cfg.Seed != 0 {
		t.Fatalf("unexpected bot config: %+v", cfg)
	}
}
