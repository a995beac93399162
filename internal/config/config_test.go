package config

import (
	"testing"
	"time"

	"chainlink-service/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.Provider != defaultProvider {
		t.Fatalf("expected default provider, got %s", cfg.Provider)
	}
	if len(cfg.Leagues) != 1 || cfg.Leagues[0] != domain.LeagueNFL {
		t.Fatalf("expected NFL default, got %v", cfg.Leagues)
	}
	if cfg.Scheduler.ScoreboardSpec != defaultScoreboardSpec {
		t.Fatalf("expected default scoreboard spec, got %s", cfg.Scheduler.ScoreboardSpec)
	}
	if cfg.Sportsfeed.RetryAttempts != defaultRetryAttempts {
		t.Fatalf("expected single attempt default, got %d", cfg.Sportsfeed.RetryAttempts)
	}
}

func TestLoadLeaguesFromEnv(t *testing.T) {
	t.Setenv(envLeagues, "nfl, nba ,XFL")
	cfg := Load()
	if len(cfg.Leagues) != 2 {
		t.Fatalf("expected unsupported codes dropped, got %v", cfg.Leagues)
	}
	if cfg.Leagues[0] != domain.LeagueNFL || cfg.Leagues[1] != domain.LeagueNBA {
		t.Fatalf("unexpected leagues: %v", cfg.Leagues)
	}
}

func TestLoadLeaguesAllInvalidFallsBack(t *testing.T) {
	t.Setenv(envLeagues, "XFL,ABA")
	cfg := Load()
	if len(cfg.Leagues) != 1 || cfg.Leagues[0] != domain.LeagueNFL {
		t.Fatalf("expected NFL fallback, got %v", cfg.Leagues)
	}
}

func TestLoadSecretsAndStorage(t *testing.T) {
	t.Setenv(envCronSecret, "hush")
	t.Setenv(envAdminToken, "admin")
	t.Setenv(envPostgresDSN, "postgres://localhost/chainlink")
	t.Setenv(envRedisAddr, "localhost:6379")
	t.Setenv(envRedisDB, "2")
	t.Setenv(envMongoURI, "mongodb://localhost:27017")

	cfg := Load()
	if cfg.CronSecret != "hush" || cfg.AdminToken != "admin" {
		t.Fatalf("expected secrets loaded")
	}
	if cfg.Storage.PostgresDSN == "" || cfg.Storage.RedisAddr == "" || cfg.Storage.MongoURI == "" {
		t.Fatalf("expected storage config loaded: %+v", cfg.Storage)
	}
	if cfg.Storage.RedisDB != 2 {
		t.Fatalf("expected redis db 2, got %d", cfg.Storage.RedisDB)
	}
	if cfg.Storage.MongoDatabase != defaultMongoDatabase {
		t.Fatalf("expected default mongo database, got %s", cfg.Storage.MongoDatabase)
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_DURATION", "5s")
	if got := durationEnvOrDefault("TEST_DURATION", time.Second); got != 5*time.Second {
		t.Fatalf("expected 5s, got %s", got)
	}
	t.Setenv("TEST_DURATION", "-1s")
	if got := durationEnvOrDefault("TEST_DURATION", time.Second); got != time.Second {
		t.Fatalf("expected fallback on non-positive duration, got %s", got)
	}

	t.Setenv("TEST_INT", "nope")
	if got := intEnvOrDefault("TEST_INT", 7); got != 7 {
		t.Fatalf("expected fallback int, got %d", got)
	}

	t.Setenv("TEST_BOOL", "yes")
	if !boolEnvOrDefault("TEST_BOOL", false) {
		t.Fatalf("expected yes to parse true")
	}
	t.Setenv("TEST_BOOL", "0")
	if boolEnvOrDefault("TEST_BOOL", true) {
		t.Fatalf("expected 0 to parse false")
	}
	t.Setenv("TEST_BOOL", "maybe")
	if !boolEnvOrDefault("TEST_BOOL", true) {
		t.Fatalf("expected fallback on garbage")
	}

	t.Setenv("TEST_CSV", " a, ,b ")
	got := csvEnvOrDefault("TEST_CSV", "")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected csv parse: %v", got)
	}
}
