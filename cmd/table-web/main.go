package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kambling/internal/cards"
	"kambling/internal/config"
	"kambling/internal/gateway"
	"kambling/internal/logging"
	"kambling/internal/store"
	httptransport "kambling/internal/transport/http"
	"kambling/internal/view"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("load .env failed")
	}
	cfg, err := config.LoadApp()
	if err != nil {
		log.Fatal().Err(err).Msg("load config failed")
	}
	if err := logging.Init(cfg.Log); err != nil {
		log.Warn().Err(err).Msg("log file unavailable; logging to stdout")
	}
	defer func() { _ = logging.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := store.New(cfg.Web.LogWindow)
	gw := gateway.New(cfg.Client, st)
	ctrl := view.NewController(gw, st)
	tbl := httptransport.NewTable(st, view.NewComposer(cards.NewPresenter(cfg.Cards)), ctrl, cfg.Web)

	if err := ctrl.Mount(ctx); err != nil {
		log.Warn().Err(err).Msg("first game failed; waiting for retry")
	}

	r := httptransport.NewRouter(tbl)
	httptransport.LogRoutes(r)
	server := &http.Server{
		Addr:              cfg.Web.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		st.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.Web.HTTPAddr).Str("game_server", cfg.Client.ServerURL).Msg("http listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
