package store

import (
	"context"
	"errors"
	"time"

	"chainlink-service/internal/domain"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// MatchupStore persists matchups. InsertMatchup assigns a generated
// identifier and writes it back onto the record.
type MatchupStore interface {
	InsertMatchup(ctx context.Context, m *domain.Matchup) error
	UpdateMatchup(ctx context.Context, m domain.Matchup) error
	GetMatchup(ctx context.Context, id string) (domain.Matchup, error)
	// ListMatchupsInWindow returns a league's matchups whose start time falls
	// in [from, to).
	ListMatchupsInWindow(ctx context.Context, league domain.League, from, to time.Time) ([]domain.Matchup, error)
}

// PickStore persists user picks.
type PickStore interface {
	InsertPick(ctx context.Context, p *domain.Pick) error
	UpdatePick(ctx context.Context, p domain.Pick) error
	DeletePick(ctx context.Context, id string) error
	GetPick(ctx context.Context, id string) (domain.Pick, error)
	// ActivePickForUser returns the user's single active pick, or ErrNotFound.
	ActivePickForUser(ctx context.Context, userID string) (domain.Pick, error)
	ListActivePicksForMatchup(ctx context.Context, matchupID string) ([]domain.Pick, error)
}

// StreakStore persists streaks, one active row per (user, campaign).
type StreakStore interface {
	GetStreak(ctx context.Context, userID, campaign string) (domain.Streak, error)
	SaveStreak(ctx context.Context, s domain.Streak) error
}

// Store combines all persistence capabilities.
type Store interface {
	MatchupStore
	PickStore
	StreakStore
}
