package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soft-network/deskpro/internal/api"
	"github.com/soft-network/deskpro/internal/config"
	"github.com/soft-network/deskpro/internal/router"
	"github.com/soft-network/deskpro/internal/view"
	"github.com/soft-network/deskpro/pkg/logger"
)

func main() {
	cfg := config.Load()
	l := logger.New(cfg.Env)

	renderer, err := view.NewRenderer(cfg.TemplateDir, cfg.PublicAPIURL, l)
	if err != nil {
		l.Fatal().Err(err).Str("dir", cfg.TemplateDir).Msg("template setup")
	}

	client := api.NewClient(cfg.BackendURL, l)
	r := router.New(l, client, renderer, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		l.Info().Str("port", cfg.Port).Str("backend", cfg.BackendURL).Msg("web frontend listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("shutdown")
	}
	l.Info().Msg("shutdown complete")
}
