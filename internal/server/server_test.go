package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chainlink-service/internal/config"
	"chainlink-service/internal/domain"
)

func testConfig() config.Config {
	return config.Config{
		Port:       "8080",
		Provider:   "fixture",
		Leagues:    []domain.League{domain.LeagueNFL},
		Campaign:   "2026",
		CronSecret: "secret",
		AdminToken: "admin",
		Scheduler: config.SchedulerConfig{
			Enabled:        false,
			ScheduleSpec:   "0 * * * *",
			ScoreboardSpec: "* * * * *",
		},
	}
}

func TestNewWiresInMemoryBackends(t *testing.T) {
	srv, err := New(context.Background(), testConfig(), nil)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if srv.Handler() == nil {
		t.Fatalf("expected handler")
	}
	if len(srv.closers) != 0 {
		t.Fatalf("in-memory backends need no closers, got %d", len(srv.closers))
	}
}

func TestServerServesHealth(t *testing.T) {
	srv, err := New(context.Background(), testConfig(), nil)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestServerCronScheduleEndToEnd(t *testing.T) {
	srv, err := New(context.Background(), testConfig(), nil)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cron/schedule?key=secret", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Results []struct {
			Inserted int `json:"inserted"`
		} `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Results) != 1 || body.Results[0].Inserted != 2 {
		t.Fatalf("expected two fixture matchups inserted: %+v", body.Results)
	}
}

func TestServerCronRejectsBadSecret(t *testing.T) {
	srv, err := New(context.Background(), testConfig(), nil)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cron/schedule?key=wrong", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestServerMatchupsTodayAlwaysAnswers(t *testing.T) {
	srv, err := New(context.Background(), testConfig(), nil)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/matchups/today", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestNewWithSchedulerEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.Scheduler.Enabled = true

	srv, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if srv.scheduler == nil {
		t.Fatalf("expected scheduler wired when enabled")
	}
}
