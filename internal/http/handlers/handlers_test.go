package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chainlink-service/internal/app/picks"
	"chainlink-service/internal/app/streaks"
	"chainlink-service/internal/cache"
	"chainlink-service/internal/cron"
	"chainlink-service/internal/domain"
	"chainlink-service/internal/store"
)

var gameDay = time.Date(2026, 1, 15, 20, 0, 0, 0, time.UTC)

type handlerFixture struct {
	store   *store.MemoryStore
	cache   *cache.MemoryCache
	handler *Handler
}

func newHandlerFixture(statusFn func() cron.Status) *handlerFixture {
	st := store.NewMemoryStore()
	c := cache.NewMemoryCache()
	pickSvc := picks.NewService(st, nil, "2026")
	streakSvc := streaks.NewService(st, "2026")
	h := NewHandler(pickSvc, streakSvc, st, c, []domain.League{domain.LeagueNFL}, nil, statusFn)
	h.now = func() time.Time { return gameDay }
	return &handlerFixture{store: st, cache: c, handler: h}
}

func TestHealth(t *testing.T) {
	f := newHandlerFixture(nil)
	rec := httptest.NewRecorder()
	f.handler.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyWithoutSchedulerAlwaysReady(t *testing.T) {
	f := newHandlerFixture(nil)
	rec := httptest.NewRecorder()
	f.handler.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyReflectsSchedulerHealth(t *testing.T) {
	notReady := func() cron.Status { return cron.Status{ConsecutiveFailures: 5, LastError: "upstream down", LastSuccess: time.Now()} }
	f := newHandlerFixture(notReady)
	rec := httptest.NewRecorder()
	f.handler.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "upstream down") {
		t.Fatalf("expected last error surfaced: %s", rec.Body.String())
	}
}

func TestMatchupsTodayServesCacheFirst(t *testing.T) {
	f := newHandlerFixture(nil)
	cached := domain.Matchup{League: domain.LeagueNFL, ExternalID: "401", Status: domain.StatusInProgress, StartTime: gameDay}
	if err := f.cache.WriteDay(httptest.NewRequest(http.MethodGet, "/", nil).Context(), cache.DayKey(gameDay), []domain.Matchup{cached}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	rec := httptest.NewRecorder()
	f.handler.MatchupsToday(rec, httptest.NewRequest(http.MethodGet, "/matchups/today", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body dayResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Date != "2026-01-15" || len(body.Matchups) != 1 || body.Matchups[0].ExternalID != "401" {
		t.Fatalf("unexpected payload: %+v", body)
	}
}

func TestMatchupsTodayFallsBackToStore(t *testing.T) {
	f := newHandlerFixture(nil)
	m := domain.Matchup{League: domain.LeagueNFL, ExternalID: "401", Status: domain.StatusScheduled, StartTime: gameDay}
	if err := f.store.InsertMatchup(httptest.NewRequest(http.MethodGet, "/", nil).Context(), &m); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	rec := httptest.NewRecorder()
	f.handler.MatchupsToday(rec, httptest.NewRequest(http.MethodGet, "/matchups/today", nil))

	var body dayResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Matchups) != 1 {
		t.Fatalf("expected store fallback to serve the slate: %+v", body)
	}
}

func TestMatchupByID(t *testing.T) {
	f := newHandlerFixture(nil)
	m := domain.Matchup{League: domain.LeagueNFL, ExternalID: "401", Status: domain.StatusScheduled}
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	if err := f.store.InsertMatchup(ctx, &m); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	rec := httptest.NewRecorder()
	f.handler.MatchupByID(rec, httptest.NewRequest(http.MethodGet, "/matchups/"+m.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	f.handler.MatchupByID(rec, httptest.NewRequest(http.MethodGet, "/matchups/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreatePickAndReadItBack(t *testing.T) {
	f := newHandlerFixture(nil)
	m := domain.Matchup{League: domain.LeagueNFL, ExternalID: "401", Status: domain.StatusScheduled}
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	if err := f.store.InsertMatchup(ctx, &m); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	body := strings.NewReader(`{"userId":"u1","matchupId":"` + m.ID + `","side":"home"}`)
	rec := httptest.NewRecorder()
	f.handler.CreatePick(rec, httptest.NewRequest(http.MethodPost, "/picks", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	f.handler.ActivePick(rec, httptest.NewRequest(http.MethodGet, "/picks/active?userId=u1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var pick domain.Pick
	if err := json.Unmarshal(rec.Body.Bytes(), &pick); err != nil {
		t.Fatalf("decode pick: %v", err)
	}
	if pick.Side != domain.SideHome || !pick.Active {
		t.Fatalf("unexpected pick: %+v", pick)
	}
}

func TestCreatePickValidation(t *testing.T) {
	f := newHandlerFixture(nil)

	rec := httptest.NewRecorder()
	f.handler.CreatePick(rec, httptest.NewRequest(http.MethodPost, "/picks", strings.NewReader(`{`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: expected 400, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	f.handler.CreatePick(rec, httptest.NewRequest(http.MethodPost, "/picks", strings.NewReader(`{"userId":"u1"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing matchupId: expected 400, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	f.handler.CreatePick(rec, httptest.NewRequest(http.MethodPost, "/picks", strings.NewReader(`{"userId":"u1","matchupId":"missing","side":"HOME"}`)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown matchup: expected 404, got %d", rec.Code)
	}
}

func TestCreatePickOnStartedMatchupConflicts(t *testing.T) {
	f := newHandlerFixture(nil)
	m := domain.Matchup{League: domain.LeagueNFL, ExternalID: "401", Status: domain.StatusInProgress}
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	if err := f.store.InsertMatchup(ctx, &m); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	body := strings.NewReader(`{"userId":"u1","matchupId":"` + m.ID + `","side":"HOME"}`)
	rec := httptest.NewRecorder()
	f.handler.CreatePick(rec, httptest.NewRequest(http.MethodPost, "/picks", body))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestActivePickRequiresUser(t *testing.T) {
	f := newHandlerFixture(nil)
	rec := httptest.NewRecorder()
	f.handler.ActivePick(rec, httptest.NewRequest(http.MethodGet, "/picks/active", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestStreakByUserServesZeroStreak(t *testing.T) {
	f := newHandlerFixture(nil)
	rec := httptest.NewRecorder()
	f.handler.StreakByUser(rec, httptest.NewRequest(http.MethodGet, "/streaks/u1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var streak domain.Streak
	if err := json.Unmarshal(rec.Body.Bytes(), &streak); err != nil {
		t.Fatalf("decode streak: %v", err)
	}
	if streak.UserID != "u1" || streak.Count != 0 {
		t.Fatalf("unexpected streak: %+v", streak)
	}
}
