// owfantasy: reporte de fantasy y leaderboard desde la terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jose-valero/ow-fantasy-report/internal/app/bootstrap"
	"github.com/jose-valero/ow-fantasy-report/internal/infra/config"
	"github.com/jose-valero/ow-fantasy-report/internal/infra/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(loadRuntime).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadRuntime arma el runtime real; needAPI=false permite correr sin FACEIT_API_KEY.
func loadRuntime(ctx context.Context, needAPI bool) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if needAPI {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	// la salida estándar es para el reporte
	log := logging.NewWithWriter(os.Stderr, cfg.LogLevel)

	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	rt := &runtime{Reports: app.Reports, Leaderboard: app.Leaderboard, close: app.Close}
	if app.DB != nil {
		rt.Rosters = app.Rosters
	}
	return rt, nil
}
