// Package scoreboard reconciles the cached day slate against the upstream
// live scoreboard and routes every change through settlement.
package scoreboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"chainlink-service/internal/cache"
	"chainlink-service/internal/domain"
	"chainlink-service/internal/logging"
	"chainlink-service/internal/metrics"
	"chainlink-service/internal/providers"
	"chainlink-service/internal/timeutil"
)

const jobName = "scoreboard"

// ErrNoCachedDay is returned when the day's cache entry is empty, which
// means no schedule run has produced a slate to reconcile against.
var ErrNoCachedDay = errors.New("no cached matchups for today")

// Settler folds one scoreboard event into a matchup and returns the updated
// record.
type Settler interface {
	Apply(ctx context.Context, m domain.Matchup, ev domain.ScoreboardEvent) (domain.Matchup, error)
}

// Summary reports what one scoreboard run did.
type Summary struct {
	League  domain.League `json:"league"`
	Events  int           `json:"events"`
	Changed int           `json:"changed"`
	Finals  int           `json:"finals"`
	Cached  int           `json:"cached"`
}

// Service runs scoreboard reconciliation for one league at a time.
type Service struct {
	provider providers.ScoreboardProvider
	cache    cache.MatchupCache
	settler  Settler
	recorder *metrics.Recorder
	logger   *slog.Logger

	now func() time.Time
}

func NewService(provider providers.ScoreboardProvider, c cache.MatchupCache, settler Settler, recorder *metrics.Recorder, logger *slog.Logger) *Service {
	return &Service{
		provider: provider,
		cache:    c,
		settler:  settler,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Run fetches the live scoreboard and the cached day slate concurrently,
// settles every matchup whose status or score moved, and writes the changed
// records back to the cache in one batch. An unchanged scoreboard produces
// zero writes.
func (s *Service) Run(ctx context.Context, league domain.League) (Summary, error) {
	started := time.Now()
	summary, err := s.run(ctx, league)
	s.recorder.RecordCronRun(jobName, string(league), time.Since(started), err)
	if err != nil {
		logging.Error(s.logger, "scoreboard run failed", err, logging.FieldLeague, string(league))
		return summary, err
	}
	logging.Info(s.logger, "scoreboard run complete",
		logging.FieldLeague, string(league),
		"events", summary.Events,
		"changed", summary.Changed,
		"finals", summary.Finals)
	return summary, nil
}

func (s *Service) run(ctx context.Context, league domain.League) (Summary, error) {
	summary := Summary{League: league}
	now := s.now()

	var (
		wg       sync.WaitGroup
		events   []domain.ScoreboardEvent
		cached   map[string]domain.Matchup
		eventErr error
		cacheErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		events, eventErr = s.provider.FetchScoreboard(ctx, league, timeutil.PacificDate(now))
	}()
	go func() {
		defer wg.Done()
		cached, cacheErr = s.cache.ReadDay(ctx, cache.DayKey(now))
	}()
	wg.Wait()

	if eventErr != nil {
		return summary, fmt.Errorf("fetch scoreboard: %w", eventErr)
	}
	if cacheErr != nil {
		return summary, fmt.Errorf("read cached day: %w", cacheErr)
	}
	summary.Events = len(events)
	if len(cached) == 0 {
		return summary, ErrNoCachedDay
	}

	byExternal := make(map[string]domain.ScoreboardEvent, len(events))
	for _, ev := range events {
		byExternal[ev.ExternalID] = ev
	}

	var changed []domain.Matchup
	for id, m := range cached {
		ev, ok := byExternal[id]
		if !ok {
			// The upstream sometimes trims events mid-day; an absent event
			// is not a state change.
			continue
		}
		if !moved(m, ev) {
			continue
		}

		updated, err := s.settler.Apply(ctx, m, ev)
		if err != nil {
			return summary, fmt.Errorf("settle matchup %s: %w", m.ID, err)
		}
		changed = append(changed, updated)
		summary.Changed++
		if updated.Status == domain.StatusFinal && m.Status != domain.StatusFinal {
			summary.Finals++
		}
	}

	if len(changed) > 0 {
		if err := s.cache.WriteDay(ctx, cache.DayKey(now), changed); err != nil {
			return summary, fmt.Errorf("write cache day: %w", err)
		}
		s.recorder.RecordCacheWrite(string(league), len(changed))
	}
	summary.Cached = len(changed)
	return summary, nil
}

// moved reports whether the event carries any state the cache has not seen.
// A settled matchup never moves again.
func moved(m domain.Matchup, ev domain.ScoreboardEvent) bool {
	if m.Status == domain.StatusFinal {
		return false
	}
	return m.Status != ev.Status ||
		m.Home.Value != ev.HomeScore ||
		m.Away.Value != ev.AwayScore
}
