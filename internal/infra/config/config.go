package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	FaceitAPIKey  string `env:"FACEIT_API_KEY"`
	LegacyAPIKey  string `env:"API_KEY"` // nombre viejo del .env
	FaceitBaseURL string `env:"FACEIT_BASE_URL" envDefault:"https://open.faceit.com/data/v4"`

	HTTPAddr        string `env:"HTTP_ADDR" envDefault:":8080"`
	LeaderboardDir  string `env:"LEADERBOARD_DIR" envDefault:"./leaderboard-data"`
	DatabaseURL     string `env:"DATABASE_URL"`
	ReportOutputDir string `env:"REPORT_OUTPUT_DIR"`
	// separadas por "|" porque los nombres de torneo llevan comas
	AllowedCompetitions []string `env:"ALLOWED_COMPETITIONS" envSeparator:"|"`
	WebhookSecret       string   `env:"FACEIT_WEBHOOK_SECRET"`

	DiscordToken    string        `env:"DISCORD_BOT_TOKEN"`
	DiscordGuild    string        `env:"DISCORD_GUILD_ID"`
	ReportChannelID string        `env:"REPORT_CHANNEL_ID"`
	AdminRoleIDs    []string      `env:"ADMIN_ROLE_IDS" envSeparator:","`
	ReportCooldown  time.Duration `env:"REPORT_COOLDOWN" envDefault:"10s"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load lee .env (si existe) y después el entorno.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.FaceitAPIKey == "" {
		cfg.FaceitAPIKey = cfg.LegacyAPIKey
	}
	cfg.AllowedCompetitions = trimAll(cfg.AllowedCompetitions)
	cfg.AdminRoleIDs = trimAll(cfg.AdminRoleIDs)
	return cfg, nil
}

func (c Config) Validate() error {
	if c.FaceitAPIKey == "" {
		return errors.New("faltante env FACEIT_API_KEY")
	}
	return nil
}

// ValidateBot suma lo que necesita cmd/bot.
func (c Config) ValidateBot() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DiscordToken == "" {
		return errors.New("faltante env DISCORD_BOT_TOKEN")
	}
	if c.DiscordGuild == "" {
		return errors.New("faltante env DISCORD_GUILD_ID")
	}
	return nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
