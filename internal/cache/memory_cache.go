package cache

import (
	"context"
	"sync"

	"chainlink-service/internal/domain"
)

// MemoryCache is the in-process MatchupCache used by tests and
// dependency-free local runs.
type MemoryCache struct {
	mu   sync.RWMutex
	days map[string]map[string]domain.Matchup

	writes int
}

// NewMemoryCache constructs an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{days: make(map[string]map[string]domain.Matchup)}
}

func (c *MemoryCache) ReadDay(_ context.Context, key string) (map[string]domain.Matchup, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	day, ok := c.days[key]
	if !ok {
		return map[string]domain.Matchup{}, nil
	}
	out := make(map[string]domain.Matchup, len(day))
	for id, m := range day {
		out[id] = m
	}
	return out, nil
}

func (c *MemoryCache) WriteDay(_ context.Context, key string, matchups []domain.Matchup) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	day, ok := c.days[key]
	if !ok {
		day = make(map[string]domain.Matchup, len(matchups))
		c.days[key] = day
	}
	for _, m := range matchups {
		day[m.ExternalID] = m
	}
	c.writes++
	return nil
}

func (c *MemoryCache) DeleteDay(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.days, key)
	return nil
}

// Writes reports how many batched writes have been issued (test helper).
func (c *MemoryCache) Writes() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.writes
}

var _ MatchupCache = (*MemoryCache)(nil)
