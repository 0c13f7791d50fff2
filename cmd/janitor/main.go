// janitor: Lambda programada que borra reportes archivados viejos.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/caarlos0/env/v11"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jose-valero/ow-fantasy-report/internal/infra/logging"
	"github.com/jose-valero/ow-fantasy-report/internal/infra/storage"
)

type janitorConfig struct {
	DatabaseURL   string `env:"DATABASE_URL"`
	RetentionDays int    `env:"REPORT_RETENTION_DAYS" envDefault:"30"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
}

func handler(ctx context.Context) (string, error) {
	cfg, err := env.ParseAs[janitorConfig]()
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	log := logging.New(cfg.LogLevel)
	if cfg.DatabaseURL == "" {
		return "no DATABASE_URL", nil
	}
	if cfg.RetentionDays <= 0 {
		return "retention disabled", nil
	}

	pcfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	pcfg.MaxConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return "", fmt.Errorf("pool: %w", err)
	}
	defer pool.Close()

	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	n, err := storage.PruneReports(cctx, pool, time.Duration(cfg.RetentionDays)*24*time.Hour)
	if err != nil {
		return "", err
	}
	log.Info("reports pruned", "deleted", n, "retention_days", cfg.RetentionDays)
	return fmt.Sprintf("ok: %d deleted", n), nil
}

func main() { lambda.Start(handler) }
