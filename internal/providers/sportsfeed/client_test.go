package sportsfeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chainlink-service/internal/domain"
	"chainlink-service/internal/providers"
)

const scoreboardBody = `{
	"events": [
		{
			"id": "401547401",
			"date": "2026-01-15T20:15Z",
			"competitions": [
				{
					"competitors": [
						{"homeAway": "home", "score": "10", "team": {"id": "12", "displayName": "Chiefs"}},
						{"homeAway": "away", "score": "7", "team": {"id": "33", "displayName": "Ravens"}}
					],
					"status": {"type": {"name": "STATUS_SCHEDULED"}},
					"broadcasts": [{"names": ["NBC"]}]
				}
			]
		}
	]
}`

func TestFetchScheduleMapsEvents(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(scoreboardBody))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	c.now = func() time.Time { return time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC) }

	matchups, err := c.FetchSchedule(context.Background(), domain.LeagueNFL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matchups) != 1 {
		t.Fatalf("expected 1 matchup, got %d", len(matchups))
	}
	if gotPath != "/football/nfl/schedule" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if matchups[0].Status != domain.StatusScheduled {
		t.Fatalf("unexpected status: %s", matchups[0].Status)
	}
}

func TestFetchScoreboardUsesDateParam(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(scoreboardBody))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	events, err := c.FetchScoreboard(context.Background(), domain.LeagueNFL, "2026-01-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].HomeScore != 10 {
		t.Fatalf("unexpected events: %+v", events)
	}
	if !strings.Contains(gotQuery, "dates=20260115") {
		t.Fatalf("expected compact date in query, got %s", gotQuery)
	}
}

func TestFetchEmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"events": []}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	if _, err := c.FetchSchedule(context.Background(), domain.LeagueNFL); !errors.Is(err, providers.ErrEmptyPayload) {
		t.Fatalf("expected ErrEmptyPayload, got %v", err)
	}
	if _, err := c.FetchScoreboard(context.Background(), domain.LeagueNFL, ""); !errors.Is(err, providers.ErrEmptyPayload) {
		t.Fatalf("expected ErrEmptyPayload, got %v", err)
	}
}

func TestFetchRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, err := c.FetchScoreboard(context.Background(), domain.LeagueNFL, "")
	rl, ok := providers.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rl.RetryAfter != 30*time.Second {
		t.Fatalf("expected retry-after parsed, got %s", rl.RetryAfter)
	}
}

func TestFetchUpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, err := c.FetchSchedule(context.Background(), domain.LeagueNFL)
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestFetchMalformedJSONIsShapeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"events": "not-a-list"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, err := c.FetchSchedule(context.Background(), domain.LeagueNFL)
	if _, ok := providers.AsShapeError(err); !ok {
		t.Fatalf("expected shape error, got %v", err)
	}
}

func TestUnsupportedLeagueDoesNotCallUpstream(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	if _, err := c.FetchSchedule(context.Background(), domain.League("XFL")); err == nil {
		t.Fatalf("expected error for unmapped league")
	}
	if calls != 0 {
		t.Fatalf("expected no upstream call, got %d", calls)
	}
}
