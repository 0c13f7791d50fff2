package service

import (
	"errors"

	"github.com/jose-valero/ow-fantasy-report/internal/adapters/faceit"
)

var (
	ErrInvalidMatchURL       = faceit.ErrInvalidMatchURL
	ErrMatchNotFound         = errors.New("match not found")
	ErrMatchNotFinished      = errors.New("match not finished yet, stats unavailable")
	ErrCompetitionNotAllowed = errors.New("competition not allowed")
	ErrUpstream              = errors.New("faceit api error")
)
