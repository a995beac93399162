package cache

import (
	"context"
	"time"

	"chainlink-service/internal/domain"
	"chainlink-service/internal/timeutil"
)

// keyPrefix partitions the cache by Pacific game day.
const keyPrefix = "MATCHUPS:"

// DayKey returns the cache key for t's Pacific game day.
func DayKey(t time.Time) string {
	return keyPrefix + timeutil.PacificDate(t)
}

// PreviousDayKey returns the cache key for the game day before t's.
func PreviousDayKey(t time.Time) string {
	return keyPrefix + timeutil.PreviousPacificDate(t)
}

// MatchupCache is the fast-lookup projection of a day's matchups, keyed by
// external game id. It is not authoritative: it must always be re-derivable
// from the store. Writes are last-writer-wins with no revision check.
type MatchupCache interface {
	// ReadDay returns the cached matchup set for the key, empty when absent.
	ReadDay(ctx context.Context, key string) (map[string]domain.Matchup, error)
	// WriteDay upserts the given matchups into the key's hash in one batch.
	WriteDay(ctx context.Context, key string, matchups []domain.Matchup) error
	// DeleteDay removes a day's entry outright.
	DeleteDay(ctx context.Context, key string) error
}
