package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bwmarrin/discordgo"

	discordrouter "github.com/jose-valero/ow-fantasy-report/internal/adapters/discord"
	"github.com/jose-valero/ow-fantasy-report/internal/adapters/httpapi"
	"github.com/jose-valero/ow-fantasy-report/internal/app/bootstrap"
	"github.com/jose-valero/ow-fantasy-report/internal/app/service"
	"github.com/jose-valero/ow-fantasy-report/internal/infra/config"
	"github.com/jose-valero/ow-fantasy-report/internal/infra/logging"
)

func main() {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.ValidateBot()
	}
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Discord session (antes de los servicios: el poster la necesita)
	auth := strings.TrimSpace(cfg.DiscordToken)
	if !strings.HasPrefix(strings.ToLower(auth), "bot ") {
		auth = "Bot " + auth
	}
	s, err := discordgo.New(auth)
	if err != nil {
		log.Error("discord session", "error", err)
		os.Exit(1)
	}
	s.Identify.Intents = discordgo.IntentsGuilds
	if err := s.Open(); err != nil {
		log.Error("discord open", "error", err)
		os.Exit(1)
	}
	defer s.Close()
	log.Info("discord connected", "user", s.State.User.Username, "id", s.State.User.ID)

	var extra []service.ReportOption
	var poster *discordrouter.ChannelPoster
	if cfg.ReportChannelID != "" {
		poster = discordrouter.NewChannelPoster(s, cfg.ReportChannelID)
		extra = append(extra, service.WithEventSink(poster.Post))
	}

	app, err := bootstrap.New(ctx, cfg, log, extra...)
	if err != nil {
		log.Error("bootstrap", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	opts := []discordrouter.Option{
		discordrouter.WithLogger(log),
		discordrouter.WithLeaderboard(app.Leaderboard),
		discordrouter.WithAdminRoles(cfg.AdminRoleIDs...),
		discordrouter.WithCooldown(cfg.ReportCooldown),
	}
	if poster != nil {
		opts = append(opts, discordrouter.WithPoster(poster))
	}
	r := discordrouter.NewRouter(s, cfg.DiscordGuild, app.Reports, opts...)
	if err := r.Register(); err != nil {
		log.Error("registering commands", "error", err)
		os.Exit(1)
	}
	r.Handlers()
	log.Info("commands registered", "guild", cfg.DiscordGuild)

	// Webhook FACEIT: los matches terminados se publican solos en REPORT_CHANNEL_ID
	if cfg.WebhookSecret != "" && poster != nil {
		web := httpapi.New(app.Reports, app.Leaderboard,
			httpapi.WithLogger(log),
			httpapi.WithLeaderboardDir(cfg.LeaderboardDir),
			httpapi.WithWebhook(cfg.WebhookSecret, app.Reports.HandleMatchEvent),
		)
		go func() {
			if err := web.Start(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("http server", "error", err)
			}
		}()
	}

	<-ctx.Done()
	log.Info("shutting down")
}
