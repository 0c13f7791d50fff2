// Package discord expone el reporte de fantasy como slash commands.
package discord

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/ow-fantasy-report/internal/app/leaderboard"
	"github.com/jose-valero/ow-fantasy-report/internal/app/report"
	"github.com/jose-valero/ow-fantasy-report/internal/infra/logging"
)

// Lo implementa service.ReportService
type ReportGenerator interface {
	Generate(ctx context.Context, matchURL string, layout report.Layout) (string, error)
}

// Lo implementa service.LeaderboardService
type LeaderboardProvider interface {
	Summary(ctx context.Context) (leaderboard.Summary, error)
}

type Router struct {
	s       *discordgo.Session
	guildID string

	reports      ReportGenerator
	boards       LeaderboardProvider
	poster       *ChannelPoster
	adminRoleIDs []string
	limiter      *userLimiter
	log          *slog.Logger
}

type Option func(*Router)

func WithLeaderboard(b LeaderboardProvider) Option {
	return func(r *Router) { r.boards = b }
}

// WithPoster habilita /fantasy post:true.
func WithPoster(p *ChannelPoster) Option {
	return func(r *Router) { r.poster = p }
}

func WithAdminRoles(ids ...string) Option {
	return func(r *Router) { r.adminRoleIDs = append(r.adminRoleIDs, ids...) }
}

func WithCooldown(d time.Duration) Option {
	return func(r *Router) { r.limiter = newUserLimiter(d) }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Router) { r.log = logging.OrDefault(l) }
}

func NewRouter(s *discordgo.Session, guildID string, reports ReportGenerator, opts ...Option) *Router {
	r := &Router{
		s:       s,
		guildID: guildID,
		reports: reports,
		limiter: newUserLimiter(10 * time.Second),
		log:     slog.Default(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Register crea los comandos en el guild (o globales si guildID está vacío).
func (r *Router) Register() error {
	appID := r.s.State.User.ID
	for _, cmd := range Commands {
		if _, err := r.s.ApplicationCommandCreate(appID, r.guildID, cmd); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) Handlers() {
	r.s.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic.Type != discordgo.InteractionApplicationCommand {
			return
		}
		r.handleSlashCommand(s, ic)
	})
}
