// Package http assembles the service's route table.
package http

import (
	nethttp "net/http"

	"chainlink-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler, cronHandler *handlers.CronHandler, adminHandler *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/matchups", handler.MatchupsToday)
	mux.HandleFunc("/matchups/today", handler.MatchupsToday)
	mux.HandleFunc("/matchups/", handler.MatchupByID)
	mux.HandleFunc("/picks", handler.CreatePick)
	mux.HandleFunc("/picks/active", handler.ActivePick)
	mux.HandleFunc("/streaks/", handler.StreakByUser)
	mux.HandleFunc("/cron/schedule", cronHandler.RunSchedule)
	mux.HandleFunc("/cron/scoreboard", cronHandler.RunScoreboard)
	mux.HandleFunc("/admin/picks/", adminHandler.PickOverride)
	return mux
}
