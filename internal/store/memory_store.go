package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"chainlink-service/internal/domain"
)

// MemoryStore keeps matchups, picks, and streaks in memory behind one lock.
// It backs tests and dependency-free local runs.
type MemoryStore struct {
	mu       sync.RWMutex
	matchups map[string]domain.Matchup
	picks    map[string]domain.Pick
	streaks  map[string]domain.Streak
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		matchups: make(map[string]domain.Matchup),
		picks:    make(map[string]domain.Pick),
		streaks:  make(map[string]domain.Streak),
	}
}

func (s *MemoryStore) InsertMatchup(_ context.Context, m *domain.Matchup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	s.matchups[m.ID] = *m
	return nil
}

func (s *MemoryStore) UpdateMatchup(_ context.Context, m domain.Matchup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matchups[m.ID]; !ok {
		return ErrNotFound
	}
	s.matchups[m.ID] = m
	return nil
}

func (s *MemoryStore) GetMatchup(_ context.Context, id string) (domain.Matchup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matchups[id]
	if !ok {
		return domain.Matchup{}, ErrNotFound
	}
	return m, nil
}

func (s *MemoryStore) ListMatchupsInWindow(_ context.Context, league domain.League, from, to time.Time) ([]domain.Matchup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Matchup, 0)
	for _, m := range s.matchups {
		if m.League != league {
			continue
		}
		if m.StartTime.Before(from) || !m.StartTime.Before(to) {
			continue
		}
		result = append(result, m)
	}
	return result, nil
}

func (s *MemoryStore) InsertPick(_ context.Context, p *domain.Pick) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.picks[p.ID] = *p
	return nil
}

func (s *MemoryStore) UpdatePick(_ context.Context, p domain.Pick) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.picks[p.ID]; !ok {
		return ErrNotFound
	}
	s.picks[p.ID] = p
	return nil
}

func (s *MemoryStore) DeletePick(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.picks[id]; !ok {
		return ErrNotFound
	}
	delete(s.picks, id)
	return nil
}

func (s *MemoryStore) GetPick(_ context.Context, id string) (domain.Pick, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.picks[id]
	if !ok {
		return domain.Pick{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) ActivePickForUser(_ context.Context, userID string) (domain.Pick, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.picks {
		if p.UserID == userID && p.Active {
			return p, nil
		}
	}
	return domain.Pick{}, ErrNotFound
}

func (s *MemoryStore) ListActivePicksForMatchup(_ context.Context, matchupID string) ([]domain.Pick, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Pick, 0)
	for _, p := range s.picks {
		if p.MatchupID == matchupID && p.Active {
			result = append(result, p)
		}
	}
	return result, nil
}

func (s *MemoryStore) GetStreak(_ context.Context, userID, campaign string) (domain.Streak, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.streaks[streakKey(userID, campaign)]
	if !ok {
		return domain.Streak{}, ErrNotFound
	}
	return st, nil
}

func (s *MemoryStore) SaveStreak(_ context.Context, st domain.Streak) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	s.streaks[streakKey(st.UserID, st.Campaign)] = st
	return nil
}

func streakKey(userID, campaign string) string {
	return userID + "|" + campaign
}

var _ Store = (*MemoryStore)(nil)
