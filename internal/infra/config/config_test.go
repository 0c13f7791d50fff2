package config

import (
	"reflect"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("FACEIT_API_KEY", "k")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.LeaderboardDir != "./leaderboard-data" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.FaceitBaseURL != "https://open.faceit.com/data/v4" {
		t.Fatalf("unexpected base url %s", cfg.FaceitBaseURL)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestFromEnvLegacyAPIKey(t *testing.T) {
	t.Setenv("FACEIT_API_KEY", "")
	t.Setenv("API_KEY", "legacy")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FaceitAPIKey != "legacy" {
		t.Fatalf("expected legacy key fallback, got %q", cfg.FaceitAPIKey)
	}
}

func TestAllowedCompetitionsSplitOnPipe(t *testing.T) {
	t.Setenv("ALLOWED_COMPETITIONS", "S1 EMEA Master: Playoffs | S1 NA Master, Playoffs ||")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"S1 EMEA Master: Playoffs", "S1 NA Master, Playoffs"}
	if !reflect.DeepEqual(cfg.AllowedCompetitions, want) {
		t.Fatalf("expected %v, got %v", want, cfg.AllowedCompetitions)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("FACEIT_API_KEY", "")
	t.Setenv("API_KEY", "")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Validate() == nil {
		t.Fatal("expected missing api key error")
	}
	cfg.FaceitAPIKey = "k"
	if cfg.ValidateBot() == nil {
		t.Fatal("expected missing discord token error")
	}
	cfg.DiscordToken = "tok"
	if cfg.ValidateBot() == nil {
		t.Fatal("expected missing guild error")
	}
	cfg.DiscordGuild = "g"
	if err := cfg.ValidateBot(); err != nil {
		t.Fatalf("expected valid bot config, got %v", err)
	}
}

func TestBotExtras(t *testing.T) {
	t.Setenv("ADMIN_ROLE_IDS", " 111, ,222")
	t.Setenv("REPORT_COOLDOWN", "30s")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg.AdminRoleIDs, []string{"111", "222"}) {
		t.Fatalf("unexpected admin roles %v", cfg.AdminRoleIDs)
	}
	if cfg.ReportCooldown != 30*time.Second {
		t.Fatalf("unexpected cooldown %v", cfg.ReportCooldown)
	}
}
