package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jose-valero/ow-fantasy-report/internal/adapters/faceit"
	"github.com/jose-valero/ow-fantasy-report/internal/app/fantasy"
	"github.com/jose-valero/ow-fantasy-report/internal/app/report"
	"github.com/jose-valero/ow-fantasy-report/internal/domain"
	"github.com/jose-valero/ow-fantasy-report/internal/infra/logging"
)

type ReportService struct {
	fc      StatsAPI
	rules   fantasy.Ruleset
	allowed map[string]bool
	sinks   []ReportSink
	events  []ReportSink
	seen    func(ctx context.Context, matchID string) (bool, error)
	log     *slog.Logger
}

type ReportOption func(*ReportService)

// WithAllowedCompetitions limita los reportes a ciertos torneos (vacío = todos).
func WithAllowedCompetitions(names ...string) ReportOption {
	return func(s *ReportService) {
		for _, n := range names {
			if n = strings.TrimSpace(n); n != "" {
				s.allowed[n] = true
			}
		}
	}
}

func WithReportSink(fn ReportSink) ReportOption {
	return func(s *ReportService) {
		if fn != nil {
			s.sinks = append(s.sinks, fn)
		}
	}
}

// WithEventSink recibe sólo los reportes automáticos (webhook). Corren en orden
// y un error corta la cadena: el último suele marcar el match como reportado.
func WithEventSink(fn ReportSink) ReportOption {
	return func(s *ReportService) {
		if fn != nil {
			s.events = append(s.events, fn)
		}
	}
}

// WithSeenCheck evita repetir reportes automáticos (FACEIT reenvía webhooks).
func WithSeenCheck(fn func(ctx context.Context, matchID string) (bool, error)) ReportOption {
	return func(s *ReportService) { s.seen = fn }
}

func WithLogger(l *slog.Logger) ReportOption {
	return func(s *ReportService) { s.log = logging.OrDefault(l) }
}

func NewReportService(fc StatsAPI, rules fantasy.Ruleset, opts ...ReportOption) *ReportService {
	if len(rules) == 0 {
		rules = fantasy.Default()
	}
	s := &ReportService{fc: fc, rules: rules, allowed: map[string]bool{}, log: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Generate: URL (o id) -> reporte. Ante cualquier error no hay reporte parcial.
func (s *ReportService) Generate(ctx context.Context, matchURL string, layout report.Layout) (string, error) {
	matchID, err := faceit.ParseMatchID(matchURL)
	if err != nil {
		return "", err
	}
	return s.GenerateByID(ctx, matchID, layout)
}

func (s *ReportService) GenerateByID(ctx context.Context, matchID string, layout report.Layout) (string, error) {
	m, err := s.Match(ctx, matchID)
	if err != nil {
		return "", err
	}
	out, err := report.Build(m, report.Options{Layout: layout})
	if err != nil {
		return "", err
	}
	s.log.Info("report generated", logging.FieldMatchID, matchID, logging.FieldLayout, layout.String(), "maps", len(m.Maps))

	for _, sink := range s.sinks {
		if err := sink(ctx, matchID, out); err != nil {
			s.log.Warn("report sink failed", logging.FieldMatchID, matchID, "error", err)
		}
	}
	return out, nil
}

// Match trae match + stats de FACEIT, los arma y puntúa.
func (s *ReportService) Match(ctx context.Context, matchID string) (*domain.Match, error) {
	md, err := s.fc.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, faceit.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
		}
		return nil, upstream(err)
	}
	if len(s.allowed) > 0 && !s.allowed[md.CompetitionName] {
		return nil, fmt.Errorf("%w: %q", ErrCompetitionNotAllowed, md.CompetitionName)
	}
	if !strings.EqualFold(md.Status, domain.StatusFinished) {
		return nil, fmt.Errorf("%w: status %s", ErrMatchNotFinished, md.Status)
	}

	st, err := s.fc.GetMatchStats(ctx, matchID)
	if err != nil {
		if errors.Is(err, faceit.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMatchNotFinished, matchID)
		}
		return nil, upstream(err)
	}
	if len(st.Rounds) == 0 {
		return nil, fmt.Errorf("%w: no rounds for %s", ErrMatchNotFinished, matchID)
	}

	m, err := s.assemble(ctx, md, st)
	if err != nil {
		return nil, err
	}
	if err := fantasy.ScoreMatch(m, s.rules); err != nil {
		return nil, err
	}
	return m, nil
}

// HandleMatchEvent: llamalo con webhooks "match_status_*". Sólo interesa
// "finished"; el reporte pasa por los report sinks y después por los event sinks.
func (s *ReportService) HandleMatchEvent(ctx context.Context, matchID, status string) {
	status = strings.ToLower(status)
	if !strings.Contains(status, "finished") {
		s.log.Debug("match event ignored", logging.FieldMatchID, matchID, "status", status)
		return
	}
	if s.seen != nil {
		done, err := s.seen(ctx, matchID)
		if err != nil {
			s.log.Warn("seen check failed", logging.FieldMatchID, matchID, "error", err)
		}
		if done {
			s.log.Info("match already reported", logging.FieldMatchID, matchID)
			return
		}
	}
	out, err := s.GenerateByID(ctx, matchID, report.LayoutStacked)
	if err != nil {
		s.log.Error("auto report failed", logging.FieldMatchID, matchID, "error", err)
		return
	}
	for _, sink := range s.events {
		if err := sink(ctx, matchID, out); err != nil {
			s.log.Error("auto report delivery failed", logging.FieldMatchID, matchID, "error", err)
			return
		}
	}
}

func upstream(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUpstream, err)
}
