package service

import (
	"context"

	"github.com/jose-valero/ow-fantasy-report/internal/adapters/faceit"
	"github.com/jose-valero/ow-fantasy-report/internal/app/leaderboard"
)

// Lo implementa internal/adapters/faceit.Client
type StatsAPI interface {
	GetMatch(ctx context.Context, matchID string) (*faceit.Match, error)
	GetMatchStats(ctx context.Context, matchID string) (*faceit.MatchStats, error)
	GetPlayer(ctx context.Context, playerID string) (*faceit.PlayerDetails, error)
}

// Lo implementan storage.DirSource y storage.RosterRepo
type RosterSource interface {
	Gameweeks(ctx context.Context) (map[string][]leaderboard.Roster, error)
}

// ReportSink recibe cada reporte generado (ej: archivo en ./output).
type ReportSink func(ctx context.Context, matchID, report string) error
