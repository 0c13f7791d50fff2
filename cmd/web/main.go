package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jose-valero/ow-fantasy-report/internal/adapters/httpapi"
	"github.com/jose-valero/ow-fantasy-report/internal/app/bootstrap"
	"github.com/jose-valero/ow-fantasy-report/internal/infra/config"
	"github.com/jose-valero/ow-fantasy-report/internal/infra/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel)
	slog.SetDefault(log)
	if err := cfg.Validate(); err != nil {
		log.Error("config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Error("bootstrap", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	srv := httpapi.New(app.Reports, app.Leaderboard,
		httpapi.WithLogger(log),
		httpapi.WithLeaderboardDir(cfg.LeaderboardDir),
		httpapi.WithWebhook(cfg.WebhookSecret, app.Reports.HandleMatchEvent),
	)
	if err := srv.Start(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http server", "error", err)
		os.Exit(1)
	}
}
