// Package streaks exposes the read surface over campaign streaks.
package streaks

import (
	"context"
	"errors"

	"chainlink-service/internal/domain"
	"chainlink-service/internal/store"
)

// Service reads streaks for the configured campaign. A user who never
// settled a pick gets a zero-valued streak rather than an error.
type Service struct {
	store    store.StreakStore
	campaign string
}

func NewService(st store.StreakStore, campaign string) *Service {
	return &Service{store: st, campaign: campaign}
}

// Get returns the user's streak for the current campaign.
func (s *Service) Get(ctx context.Context, userID string) (domain.Streak, error) {
	streak, err := s.store.GetStreak(ctx, userID, s.campaign)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Streak{UserID: userID, Campaign: s.campaign}, nil
	}
	if err != nil {
		return domain.Streak{}, err
	}
	return streak, nil
}
