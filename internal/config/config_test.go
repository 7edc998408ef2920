package config

import (
	"testing"
	"time"

	"github.com/kbrleague/fantasy-h2h/internal/platform/logging"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("AppEnv = %s, want %s", cfg.AppEnv, EnvDev)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %s", cfg.HTTPAddr)
	}
	if !cfg.SwaggerEnabled {
		t.Fatal("swagger should default on outside prod")
	}
	if cfg.StartersCount != 11 {
		t.Fatalf("StartersCount = %d, want 11", cfg.StartersCount)
	}
	if cfg.CacheTTL != time.Minute {
		t.Fatalf("CacheTTL = %s, want 1m", cfg.CacheTTL)
	}
	if cfg.SofascoreBaseURL != "https://api.sofascore.com/api/v1" {
		t.Fatalf("SofascoreBaseURL = %s", cfg.SofascoreBaseURL)
	}
	if cfg.WebhookEnabled {
		t.Fatal("webhook should default off")
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadProdDisablesSwaggerByDefault(t *testing.T) {
	t.Setenv("APP_ENV", "prod")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SwaggerEnabled {
		t.Fatal("swagger should default off in prod")
	}
}

func TestLoadRejectsInvalidAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "qa")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid APP_ENV")
	}
}

func TestLoadWebhookRequiresURLWhenEnabled(t *testing.T) {
	t.Setenv("SETTLEMENT_WEBHOOK_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when webhook enabled without URL")
	}

	t.Setenv("SETTLEMENT_WEBHOOK_URL", "https://hooks.example.com/settled")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.WebhookEnabled || cfg.WebhookURL != "https://hooks.example.com/settled" {
		t.Fatalf("webhook config = %+v", cfg)
	}
}

func TestLoadParsesSofascoreIDs(t *testing.T) {
	t.Setenv("SOFASCORE_TOURNAMENT_ID", "140")
	t.Setenv("SOFASCORE_SEASON_ID", "62200")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SofascoreTournamentID != 140 || cfg.SofascoreSeasonID != 62200 {
		t.Fatalf("sofascore ids = %d/%d", cfg.SofascoreTournamentID, cfg.SofascoreSeasonID)
	}
}

func TestLoadRejectsZeroStarters(t *testing.T) {
	t.Setenv("LINEUP_STARTERS_COUNT", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero starters")
	}
}

func TestParseUptraceDSNFromOTLPHeaders(t *testing.T) {
	cases := map[string]string{
		"uptrace-dsn=https://token@api.uptrace.dev/1": "https://token@api.uptrace.dev/1",
		"other=1,uptrace-dsn='https://t@u.dev/2'":     "https://t@u.dev/2",
		"other=1":                                     "",
		"":                                            "",
	}
	for raw, want := range cases {
		if got := parseUptraceDSNFromOTLPHeaders(raw); got != want {
			t.Fatalf("parseUptraceDSNFromOTLPHeaders(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" https://a.dev , ,https://b.dev")
	if len(got) != 2 || got[0] != "https://a.dev" || got[1] != "https://b.dev" {
		t.Fatalf("splitCSV = %v", got)
	}
}
