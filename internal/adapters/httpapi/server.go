// Package httpapi expone el reporte de fantasy y el leaderboard por HTTP.
package httpapi

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/jose-valero/ow-fantasy-report/internal/app/leaderboard"
	"github.com/jose-valero/ow-fantasy-report/internal/app/report"
	"github.com/jose-valero/ow-fantasy-report/internal/infra/logging"
)

//go:embed templates/index.html
var templatesFS embed.FS

// Lo implementa service.ReportService
type ReportGenerator interface {
	Generate(ctx context.Context, matchURL string, layout report.Layout) (string, error)
}

// Lo implementa service.LeaderboardService
type LeaderboardProvider interface {
	Summary(ctx context.Context) (leaderboard.Summary, error)
}

type MatchEventFunc func(ctx context.Context, matchID, status string)

type Server struct {
	reports ReportGenerator
	boards  LeaderboardProvider

	secret       string
	onMatchEvent MatchEventFunc
	syncEvents   bool

	leaderboardDir string
	index          *template.Template
	mux            *http.ServeMux
	log            *slog.Logger
	now            func() time.Time
}

type Option func(*Server)

// WithWebhook habilita POST /faceit/webhook. Sin secreto la ruta no existe.
func WithWebhook(secret string, fn MatchEventFunc) Option {
	return func(s *Server) {
		s.secret = secret
		s.onMatchEvent = fn
	}
}

// WithSyncEvents corre el callback del webhook antes de responder (Lambda
// congela el proceso apenas devuelve la respuesta).
func WithSyncEvents() Option {
	return func(s *Server) { s.syncEvents = true }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = logging.OrDefault(l) }
}

// WithLeaderboardDir sólo se usa para informar en /health.
func WithLeaderboardDir(dir string) Option {
	return func(s *Server) { s.leaderboardDir = dir }
}

func New(reports ReportGenerator, boards LeaderboardProvider, opts ...Option) *Server {
	s := &Server{
		reports: reports,
		boards:  boards,
		mux:     http.NewServeMux(),
		log:     slog.Default(),
		now:     time.Now,
		index:   template.Must(template.ParseFS(templatesFS, "templates/index.html")),
	}
	for _, o := range opts {
		o(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /process", s.handleProcess)
	s.mux.HandleFunc("GET /api/leaderboard-data", s.handleLeaderboard)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	if s.secret != "" {
		s.mux.HandleFunc("POST /faceit/webhook", s.handleWebhook)
	}
}

// Handler devuelve el mux con logging de requests.
func (s *Server) Handler() http.Handler {
	return loggingMiddleware(s.log, s.mux)
}

// Start bloquea hasta que ctx se cancela; ahí hace shutdown ordenado.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
