// Package teststubs holds hand-rolled fakes shared across package tests.
package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"chainlink-service/internal/domain"
)

// StubProvider implements providers.SportsProvider with canned data.
type StubProvider struct {
	Matchups []domain.Matchup
	Events   []domain.ScoreboardEvent

	ScheduleErr   error
	ScoreboardErr error

	ScheduleCalls   atomic.Int64
	ScoreboardCalls atomic.Int64
}

func (s *StubProvider) FetchSchedule(_ context.Context, _ domain.League) ([]domain.Matchup, error) {
	s.ScheduleCalls.Add(1)
	if s.ScheduleErr != nil {
		return nil, s.ScheduleErr
	}
	out := make([]domain.Matchup, len(s.Matchups))
	copy(out, s.Matchups)
	return out, nil
}

func (s *StubProvider) FetchScoreboard(_ context.Context, _ domain.League, _ string) ([]domain.ScoreboardEvent, error) {
	s.ScoreboardCalls.Add(1)
	if s.ScoreboardErr != nil {
		return nil, s.ScoreboardErr
	}
	out := make([]domain.ScoreboardEvent, len(s.Events))
	copy(out, s.Events)
	return out, nil
}

// FlakyProvider fails a fixed number of times before succeeding, for retry
// decorator tests.
type FlakyProvider struct {
	Inner    *StubProvider
	FailFor  int
	Err      error
	attempts atomic.Int64
}

func (f *FlakyProvider) FetchSchedule(ctx context.Context, league domain.League) ([]domain.Matchup, error) {
	if int(f.attempts.Add(1)) <= f.FailFor {
		return nil, f.Err
	}
	return f.Inner.FetchSchedule(ctx, league)
}

func (f *FlakyProvider) FetchScoreboard(ctx context.Context, league domain.League, date string) ([]domain.ScoreboardEvent, error) {
	if int(f.attempts.Add(1)) <= f.FailFor {
		return nil, f.Err
	}
	return f.Inner.FetchScoreboard(ctx, league, date)
}

// Attempts reports how many calls the flaky provider has seen.
func (f *FlakyProvider) Attempts() int {
	return int(f.attempts.Load())
}

// StubPublisher records results published to the document-store replica.
type StubPublisher struct {
	mu        sync.Mutex
	Published []domain.Matchup
	Err       error
}

func (s *StubPublisher) PublishResult(_ context.Context, m domain.Matchup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Published = append(s.Published, m)
	return nil
}

// Count returns how many results were published.
func (s *StubPublisher) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Published)
}
