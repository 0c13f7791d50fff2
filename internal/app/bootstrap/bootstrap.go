// Package bootstrap arma las dependencias compartidas por los binarios.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jose-valero/ow-fantasy-report/internal/adapters/faceit"
	"github.com/jose-valero/ow-fantasy-report/internal/app/fantasy"
	"github.com/jose-valero/ow-fantasy-report/internal/app/service"
	"github.com/jose-valero/ow-fantasy-report/internal/infra/config"
	"github.com/jose-valero/ow-fantasy-report/internal/infra/storage"
)

type App struct {
	Config      config.Config
	Log         *slog.Logger
	Faceit      *faceit.Client
	Reports     *service.ReportService
	Leaderboard *service.LeaderboardService
	// nil sin DATABASE_URL
	DB      *sql.DB
	Rosters *storage.RosterRepo
}

// New conecta la DB (si hay), elige la fuente de rosters y arma los servicios.
// extra se suma a las opciones del ReportService (ej: el poster de Discord como event sink).
func New(ctx context.Context, cfg config.Config, log *slog.Logger, extra ...service.ReportOption) (*App, error) {
	app := &App{Config: cfg, Log: log}

	app.Faceit = faceit.New(cfg.FaceitAPIKey,
		faceit.WithBaseURL(cfg.FaceitBaseURL),
		faceit.WithLogger(log),
	)

	opts := []service.ReportOption{
		service.WithLogger(log),
		service.WithAllowedCompetitions(cfg.AllowedCompetitions...),
	}
	// extra primero: el archivo de la DB marca el match como publicado al final
	opts = append(opts, extra...)

	var rosters service.RosterSource = storage.NewDirSource(cfg.LeaderboardDir, log)
	if cfg.DatabaseURL != "" {
		db, err := storage.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := storage.Migrate(ctx, db, log); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		app.DB = db
		app.Rosters = storage.NewRosterRepo(db)
		rosters = app.Rosters

		archive := storage.NewReportRepo(db)
		opts = append(opts, service.WithEventSink(archive.Save), service.WithSeenCheck(archive.Has))
		log.Info("db ready", "rosters", "postgres")
	}
	if cfg.ReportOutputDir != "" {
		opts = append(opts, service.WithReportSink(storage.FileSink(cfg.ReportOutputDir)))
	}

	app.Reports = service.NewReportService(app.Faceit, fantasy.Default(), opts...)
	app.Leaderboard = service.NewLeaderboardService(rosters, log)
	return app, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
