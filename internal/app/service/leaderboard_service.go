package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jose-valero/ow-fantasy-report/internal/app/leaderboard"
)

type LeaderboardService struct {
	src RosterSource
	log *slog.Logger
}

func NewLeaderboardService(src RosterSource, log *slog.Logger) *LeaderboardService {
	if log == nil {
		log = slog.Default()
	}
	return &LeaderboardService{src: src, log: log}
}

// Summary carga todos los gameweeks y calcula tablas, transferencias y stages.
func (s *LeaderboardService) Summary(ctx context.Context) (leaderboard.Summary, error) {
	weeks, err := s.src.Gameweeks(ctx)
	if err != nil {
		return leaderboard.Summary{}, fmt.Errorf("load gameweeks: %w", err)
	}
	sum := leaderboard.Process(weeks)
	s.log.Debug("leaderboard processed", "gameweeks", len(sum.Leaderboards))
	return sum, nil
}
