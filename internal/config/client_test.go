package config

import (
	"testing"
	"time"
)

func TestLoadClientDefaults(t *testing.T) {
	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("LoadClient() error = %v", err)
	}
	if cfg.ServerURL != "http://localhost:5000" {
		t.Fatalf("ServerURL = %q, want http://localhost:5000", cfg.ServerURL)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("RequestTimeout = %s, want 10s", cfg.RequestTimeout)
	}
}

func TestLoadClientOverrides(t *testing.T) {
	t.Setenv("GAME_SERVER_URL", "http://127.0.0.1:9000")
	t.Setenv("REQUEST_TIMEOUT", "2500ms")

	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("LoadClient() error = %v", err)
	}
	if cfg.ServerURL != "http://127.0.0.1:9000" {
		t.Fatalf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.RequestTimeout != 2500*time.Millisecond {
		t.Fatalf("RequestTimeout = %s", cfg.RequestTimeout)
	}
}

func TestLoadClientRejectsBadValues(t *testing.T) {
	t.Setenv("GAME_SERVER_URL", "localhost")
	if _, err := LoadClient(); err == nil {
		t.Fatal("expected error for URL without scheme")
	}

	t.Setenv("GAME_SERVER_URL", "http://localhost:5000")
	t.Setenv("REQUEST_TIMEOUT", "0s")
	if _, err := LoadClient(); err == nil {
		t.Fatal("expected error for zero timeout")
	}
}

func TestLoadWebAndCardsDefaults(t *testing.T) {
	web, err := LoadWeb()
	if err != nil {
		t.Fatalf("LoadWeb() error = %v", err)
	}
	if web.HTTPAddr != ":8090" || web.LogWindow != 12 {
		t.Fatalf("unexpected web config: %+v", web)
	}
	cards, err := LoadCards()
	if err != nil {
		t.Fatalf("LoadCards() error = %v", err)
	}
	if !cards.Artwork || cards.BackURL != DefaultCardBackURL {
		t.Fatalf("unexpected cards config: %+v", cards)
	}
}

func TestLoadAppCardsOverride(t *testing.T) {
	t.Setenv("CARD_ARTWORK", "false")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadApp()
	if err != nil {
		t.Fatalf("LoadApp() error = %v", err)
	}
	if cfg.Cards.Artwork {
		t.Fatal("expected artwork disabled")
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("Log.Level = %q", cfg.Log.Level)
	}
}
