package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"chainlink-service/internal/app/picks"
	"chainlink-service/internal/domain"
	"chainlink-service/internal/logging"
	"chainlink-service/internal/store"
)

// AdminHandler exposes the administrative pick overrides used when a
// matchup stalls (postponed, canceled) and settlement never fires.
// Guarded by a bearer token; a missing token disables the surface.
type AdminHandler struct {
	picks  *picks.Service
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(pickSvc *picks.Service, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{picks: pickSvc, token: token, logger: logger}
}

// PickOverride routes /admin/picks/{id} by method: POST force-resolves,
// DELETE removes the pick.
func (h *AdminHandler) PickOverride(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized", logging.FieldPath, r.URL.Path)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}

	pickID, ok := pathTail(r.URL.Path, "/admin/picks/")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid pick id", h.logger)
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.forceResolve(w, r, pickID)
	case http.MethodDelete:
		h.deletePick(w, r, pickID)
	default:
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

type forceResolveRequest struct {
	Outcome string `json:"outcome"`
}

func (h *AdminHandler) forceResolve(w http.ResponseWriter, r *http.Request, pickID string) {
	logger := loggerFromContext(r, h.logger)

	var req forceResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", logger)
		return
	}

	pick, err := h.picks.ForceResolve(r.Context(), pickID, domain.PickStatus(strings.ToUpper(req.Outcome)))
	switch {
	case errors.Is(err, picks.ErrInvalidOutcome):
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "pick not found", logger)
	case err != nil:
		writeError(w, r, http.StatusInternalServerError, "failed to resolve pick", logger)
	default:
		writeJSON(w, http.StatusOK, pick, logger)
	}
}

func (h *AdminHandler) deletePick(w http.ResponseWriter, r *http.Request, pickID string) {
	logger := loggerFromContext(r, h.logger)

	err := h.picks.Delete(r.Context(), pickID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "pick not found", logger)
	case err != nil:
		writeError(w, r, http.StatusInternalServerError, "failed to delete pick", logger)
	default:
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"}, logger)
	}
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}
