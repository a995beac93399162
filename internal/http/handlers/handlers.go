// Package handlers wires HTTP routes to the application services.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"chainlink-service/internal/app/picks"
	"chainlink-service/internal/app/streaks"
	"chainlink-service/internal/cache"
	"chainlink-service/internal/cron"
	"chainlink-service/internal/domain"
	"chainlink-service/internal/store"
	"chainlink-service/internal/timeutil"
)

type nowFunc func() time.Time

// Handler serves the public read and pick surfaces.
type Handler struct {
	picks    *picks.Service
	streaks  *streaks.Service
	matchups store.MatchupStore
	cache    cache.MatchupCache
	leagues  []domain.League
	logger   *slog.Logger
	now      nowFunc
	statusFn func() cron.Status
}

// NewHandler constructs a Handler with defaults. statusFn may be nil when
// no in-process scheduler runs.
func NewHandler(pickSvc *picks.Service, streakSvc *streaks.Service, matchups store.MatchupStore, c cache.MatchupCache, leagues []domain.League, logger *slog.Logger, statusFn func() cron.Status) *Handler {
	return &Handler{
		picks:    pickSvc,
		streaks:  streakSvc,
		matchups: matchups,
		cache:    c,
		leagues:  leagues,
		logger:   logger,
		now:      time.Now,
		statusFn: statusFn,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// dayResponse is the payload for the today read surface.
type dayResponse struct {
	Date     string           `json:"date"`
	Matchups []domain.Matchup `json:"matchups"`
}

// MatchupsToday serves the cached day slate, falling back to the store when
// the cache has no entry yet.
func (h *Handler) MatchupsToday(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	now := h.now()
	date := timeutil.PacificDate(now)

	cached, err := h.cache.ReadDay(r.Context(), cache.DayKey(now))
	if err != nil {
		writeError(w, r, http.StatusBadGateway, "cache unavailable", logger)
		return
	}

	var matchups []domain.Matchup
	if len(cached) > 0 {
		matchups = make([]domain.Matchup, 0, len(cached))
		for _, m := range cached {
			matchups = append(matchups, m)
		}
		if logger != nil {
			logger.Info("served cached matchups", "date", date, "count", len(matchups))
		}
	} else {
		from, to := timeutil.PacificDayBounds(now)
		for _, league := range h.leagues {
			stored, err := h.matchups.ListMatchupsInWindow(r.Context(), league, from, to)
			if err != nil {
				writeError(w, r, http.StatusInternalServerError, "storage unavailable", logger)
				return
			}
			matchups = append(matchups, stored...)
		}
		if logger != nil {
			logger.Info("served stored matchups", "date", date, "count", len(matchups))
		}
	}

	sort.Slice(matchups, func(i, j int) bool {
		if matchups[i].StartTime.Equal(matchups[j].StartTime) {
			return matchups[i].ExternalID < matchups[j].ExternalID
		}
		return matchups[i].StartTime.Before(matchups[j].StartTime)
	})
	if matchups == nil {
		matchups = []domain.Matchup{}
	}
	writeJSON(w, http.StatusOK, dayResponse{Date: date, Matchups: matchups}, logger)
}

// MatchupByID serves one stored matchup. Expects path /matchups/{id}.
func (h *Handler) MatchupByID(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	id, ok := pathTail(r.URL.Path, "/matchups/")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid matchup id", h.logger)
		return
	}

	matchup, err := h.matchups.GetMatchup(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "matchup not found", h.logger)
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "storage unavailable", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, matchup, h.logger)
}

type createPickRequest struct {
	UserID    string `json:"userId"`
	MatchupID string `json:"matchupId"`
	Side      string `json:"side"`
}

// CreatePick commits a user's selection.
func (h *Handler) CreatePick(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	var req createPickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", logger)
		return
	}
	if req.UserID == "" || req.MatchupID == "" {
		writeError(w, r, http.StatusBadRequest, "userId and matchupId are required", logger)
		return
	}

	pick, err := h.picks.Create(r.Context(), req.UserID, req.MatchupID, domain.Side(strings.ToUpper(req.Side)))
	switch {
	case errors.Is(err, picks.ErrInvalidSide):
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
	case errors.Is(err, picks.ErrMatchupNotPickable):
		writeError(w, r, http.StatusConflict, err.Error(), logger)
	case errors.Is(err, picks.ErrPickLocked):
		writeError(w, r, http.StatusConflict, err.Error(), logger)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "matchup not found", logger)
	case err != nil:
		writeError(w, r, http.StatusInternalServerError, "failed to create pick", logger)
	default:
		writeJSON(w, http.StatusCreated, pick, logger)
	}
}

// ActivePick returns the caller's current active pick. Expects ?userId=.
func (h *Handler) ActivePick(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		writeError(w, r, http.StatusBadRequest, "userId is required", h.logger)
		return
	}

	pick, err := h.picks.Active(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "no active pick", h.logger)
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "storage unavailable", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, pick, h.logger)
}

// StreakByUser serves a user's campaign streak. Expects path
// /streaks/{userId}.
func (h *Handler) StreakByUser(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	userID, ok := pathTail(r.URL.Path, "/streaks/")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid user id", h.logger)
		return
	}

	streak, err := h.streaks.Get(r.Context(), userID)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "storage unavailable", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, streak, h.logger)
}

// pathTail extracts the single path element after the prefix.
func pathTail(path, prefix string) (string, bool) {
	raw := strings.TrimPrefix(path, prefix)
	if raw == "" || raw == path {
		return "", false
	}
	tail, err := url.PathUnescape(raw)
	if err != nil || tail == "" || strings.ContainsAny(tail, " \t/") {
		return "", false
	}
	return tail, true
}
