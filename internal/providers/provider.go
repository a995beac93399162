package providers

import (
	"context"

	"chainlink-service/internal/domain"
)

// ScheduleProvider fetches the upstream schedule for a league and normalizes
// it into matchups. Implementations return every event the upstream reports;
// callers filter to the statuses they care about.
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context, league domain.League) ([]domain.Matchup, error)
}

// ScoreboardProvider fetches the live scoreboard for a league. The date,
// when provided, is a YYYY-MM-DD string; implementations interpret an empty
// date as "today" in the game-day timezone.
type ScoreboardProvider interface {
	FetchScoreboard(ctx context.Context, league domain.League, date string) ([]domain.ScoreboardEvent, error)
}

// SportsProvider combines both provider capabilities.
type SportsProvider interface {
	ScheduleProvider
	ScoreboardProvider
}
