// Package schedule ingests the upstream slate for a league, reconciles it
// against stored matchups, and rebuilds the day's cache entry.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chainlink-service/internal/cache"
	"chainlink-service/internal/domain"
	"chainlink-service/internal/logging"
	"chainlink-service/internal/metrics"
	"chainlink-service/internal/providers"
	"chainlink-service/internal/store"
	"chainlink-service/internal/timeutil"
)

const jobName = "schedule"

// Summary reports what one schedule run did.
type Summary struct {
	League   domain.League `json:"league"`
	Fetched  int           `json:"fetched"`
	Inserted int           `json:"inserted"`
	Updated  int           `json:"updated"`
	Cached   int           `json:"cached"`
}

// Service runs schedule ingestion for one league at a time.
type Service struct {
	provider providers.ScheduleProvider
	store    store.MatchupStore
	cache    cache.MatchupCache
	recorder *metrics.Recorder
	logger   *slog.Logger

	now func() time.Time
}

func NewService(provider providers.ScheduleProvider, st store.MatchupStore, c cache.MatchupCache, recorder *metrics.Recorder, logger *slog.Logger) *Service {
	return &Service{
		provider: provider,
		store:    st,
		cache:    c,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Run fetches the league's schedule, inserts matchups not yet stored,
// patches drifted ones, and rewrites the cached day entry. An upstream
// failure (including an empty payload) aborts before any write. Re-running
// against an unchanged upstream is a no-op.
func (s *Service) Run(ctx context.Context, league domain.League) (Summary, error) {
	started := time.Now()
	summary, err := s.run(ctx, league)
	s.recorder.RecordCronRun(jobName, string(league), time.Since(started), err)
	if err != nil {
		logging.Error(s.logger, "schedule run failed", err, logging.FieldLeague, string(league))
		return summary, err
	}
	logging.Info(s.logger, "schedule run complete",
		logging.FieldLeague, string(league),
		"fetched", summary.Fetched,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"cached", summary.Cached)
	return summary, nil
}

func (s *Service) run(ctx context.Context, league domain.League) (Summary, error) {
	fetched, err := s.provider.FetchSchedule(ctx, league)
	if err != nil {
		return Summary{League: league}, fmt.Errorf("fetch schedule: %w", err)
	}

	summary := Summary{League: league, Fetched: len(fetched)}
	if len(fetched) == 0 {
		return summary, nil
	}

	from, to := startWindow(fetched)
	stored, err := s.store.ListMatchupsInWindow(ctx, league, from, to)
	if err != nil {
		return summary, fmt.Errorf("load stored matchups: %w", err)
	}
	byExternal := make(map[string]domain.Matchup, len(stored))
	for _, m := range stored {
		byExternal[m.ExternalID] = m
	}

	now := s.now()
	today := timeutil.PacificDate(now)
	var todays []domain.Matchup

	for _, m := range fetched {
		record, changed, err := s.reconcile(ctx, league, m, byExternal)
		if err != nil {
			return summary, err
		}
		switch changed {
		case changeInserted:
			summary.Inserted++
		case changeUpdated:
			summary.Updated++
		case changeSkipped:
			continue
		}
		if timeutil.PacificDate(record.StartTime) == today {
			todays = append(todays, record)
		}
	}

	// The previous day's entry is dead weight once a new slate lands.
	if err := s.cache.DeleteDay(ctx, cache.PreviousDayKey(now)); err != nil {
		return summary, fmt.Errorf("delete stale cache day: %w", err)
	}
	if len(todays) > 0 {
		if err := s.cache.WriteDay(ctx, cache.DayKey(now), todays); err != nil {
			return summary, fmt.Errorf("write cache day: %w", err)
		}
		s.recorder.RecordCacheWrite(string(league), len(todays))
	}
	summary.Cached = len(todays)
	return summary, nil
}

type changeKind int

const (
	changeNone changeKind = iota
	changeInserted
	changeUpdated
	changeSkipped
)

// reconcile folds one fetched matchup into the store. New scheduled games
// are inserted; games we already track absorb upstream drift (start time,
// network, status) only while still SCHEDULED, so live or settled records
// never regress from a schedule feed.
func (s *Service) reconcile(ctx context.Context, league domain.League, m domain.Matchup, byExternal map[string]domain.Matchup) (domain.Matchup, changeKind, error) {
	existing, ok := byExternal[m.ExternalID]
	if !ok {
		if m.Status != domain.StatusScheduled {
			return domain.Matchup{}, changeSkipped, nil
		}
		if err := s.store.InsertMatchup(ctx, &m); err != nil {
			return m, changeNone, fmt.Errorf("insert matchup %s/%s: %w", league, m.ExternalID, err)
		}
		return m, changeInserted, nil
	}

	if existing.Status != domain.StatusScheduled || !drifted(existing, m) {
		return existing, changeNone, nil
	}

	existing.Status = m.Status
	existing.StartTime = m.StartTime
	existing.Network = m.Network
	existing.Home.Name = m.Home.Name
	existing.Home.Image = m.Home.Image
	existing.Away.Name = m.Away.Name
	existing.Away.Image = m.Away.Image
	if err := s.store.UpdateMatchup(ctx, existing); err != nil {
		return existing, changeNone, fmt.Errorf("update matchup %s: %w", existing.ID, err)
	}
	return existing, changeUpdated, nil
}

func drifted(existing, fetched domain.Matchup) bool {
	return existing.Status != fetched.Status ||
		!existing.StartTime.Equal(fetched.StartTime) ||
		existing.Network != fetched.Network ||
		existing.Home.Name != fetched.Home.Name ||
		existing.Away.Name != fetched.Away.Name
}

// startWindow spans the fetched slate's start times, end-exclusive.
func startWindow(matchups []domain.Matchup) (time.Time, time.Time) {
	from, to := matchups[0].StartTime, matchups[0].StartTime
	for _, m := range matchups[1:] {
		if m.StartTime.Before(from) {
			from = m.StartTime
		}
		if m.StartTime.After(to) {
			to = m.StartTime
		}
	}
	return from, to.Add(time.Second)
}
