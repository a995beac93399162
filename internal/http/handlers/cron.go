package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"chainlink-service/internal/app/schedule"
	"chainlink-service/internal/app/scoreboard"
	"chainlink-service/internal/domain"
	"chainlink-service/internal/logging"
)

// ScheduleRunner runs one schedule ingestion pass for a league.
type ScheduleRunner interface {
	Run(ctx context.Context, league domain.League) (schedule.Summary, error)
}

// ScoreboardRunner runs one scoreboard reconciliation pass for a league.
type ScoreboardRunner interface {
	Run(ctx context.Context, league domain.League) (scoreboard.Summary, error)
}

// CronHandler exposes the externally triggered run endpoints. Each endpoint
// is guarded by a shared secret carried in the `key` query parameter and
// checked before anything else happens.
type CronHandler struct {
	schedule   ScheduleRunner
	scoreboard ScoreboardRunner
	secret     string
	leagues    []domain.League
	logger     *slog.Logger
}

// NewCronHandler constructs a CronHandler.
func NewCronHandler(scheduleSvc ScheduleRunner, scoreboardSvc ScoreboardRunner, secret string, leagues []domain.League, logger *slog.Logger) *CronHandler {
	return &CronHandler{
		schedule:   scheduleSvc,
		scoreboard: scoreboardSvc,
		secret:     secret,
		leagues:    leagues,
		logger:     logger,
	}
}

// RunSchedule triggers schedule ingestion for the requested league, or for
// every configured league when none is named.
func (h *CronHandler) RunSchedule(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(ctx context.Context, league domain.League) (any, error) {
		return h.schedule.Run(ctx, league)
	})
}

// RunScoreboard triggers scoreboard reconciliation.
func (h *CronHandler) RunScoreboard(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(ctx context.Context, league domain.League) (any, error) {
		return h.scoreboard.Run(ctx, league)
	})
}

func (h *CronHandler) run(w http.ResponseWriter, r *http.Request, runOne func(context.Context, domain.League) (any, error)) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	// The secret check comes first: an unauthorized call must not reach the
	// upstream or touch any state.
	if !h.authorize(r) {
		logging.Warn(h.logger, "cron unauthorized", logging.FieldPath, r.URL.Path)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	leagues, ok := h.resolveLeagues(w, r, logger)
	if !ok {
		return
	}

	results := make([]any, 0, len(leagues))
	for _, league := range leagues {
		summary, err := runOne(r.Context(), league)
		if err != nil {
			// The run is abandoned for this league with no partial mutation;
			// surface the failure so the caller can re-trigger.
			writeError(w, r, http.StatusBadRequest, err.Error(), logger)
			return
		}
		results = append(results, summary)
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results}, logger)
}

// resolveLeagues picks the target leagues from the request. An unsupported
// league code fails before any upstream call.
func (h *CronHandler) resolveLeagues(w http.ResponseWriter, r *http.Request, logger *slog.Logger) ([]domain.League, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("league"))
	if raw == "" {
		return h.leagues, true
	}
	league, err := domain.ParseLeague(raw)
	if err != nil {
		logging.Warn(logger, "cron invalid league", logging.FieldLeague, raw)
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
		return nil, false
	}
	return []domain.League{league}, true
}

func (h *CronHandler) authorize(r *http.Request) bool {
	if h.secret == "" {
		return false
	}
	key := r.URL.Query().Get("key")
	return subtle.ConstantTimeCompare([]byte(key), []byte(h.secret)) == 1
}
