// Package picks owns the user-facing pick lifecycle: committing a
// selection, swapping it before lock, and the administrative escape hatches
// for stalled matchups.
package picks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"chainlink-service/internal/domain"
	"chainlink-service/internal/logging"
	"chainlink-service/internal/store"
)

var (
	// ErrMatchupNotPickable means the target matchup already started,
	// settled, or stalled.
	ErrMatchupNotPickable = errors.New("matchup is not open for picks")
	// ErrPickLocked means the user's current active pick sits on a matchup
	// that already started and can no longer be swapped.
	ErrPickLocked = errors.New("active pick is locked")
	// ErrInvalidSide rejects anything other than HOME or AWAY.
	ErrInvalidSide = errors.New("side must be HOME or AWAY")
	// ErrInvalidOutcome rejects a forced outcome other than WIN, LOSS, PUSH.
	ErrInvalidOutcome = errors.New("outcome must be WIN, LOSS, or PUSH")
)

// Service enforces the one-active-pick-per-user rule. The rule lives here,
// not in a database constraint.
type Service struct {
	store    store.Store
	logger   *slog.Logger
	campaign string
}

func NewService(st store.Store, logger *slog.Logger, campaign string) *Service {
	return &Service{store: st, logger: logger, campaign: campaign}
}

// Create commits a user's selection on a scheduled matchup. A still-unlocked
// active pick is replaced; a locked one (its matchup already started)
// rejects the new selection.
func (s *Service) Create(ctx context.Context, userID, matchupID string, side domain.Side) (domain.Pick, error) {
	if side != domain.SideHome && side != domain.SideAway {
		return domain.Pick{}, ErrInvalidSide
	}

	matchup, err := s.store.GetMatchup(ctx, matchupID)
	if err != nil {
		return domain.Pick{}, fmt.Errorf("load matchup %s: %w", matchupID, err)
	}
	if matchup.Status != domain.StatusScheduled {
		return domain.Pick{}, ErrMatchupNotPickable
	}

	if err := s.releaseCurrent(ctx, userID); err != nil {
		return domain.Pick{}, err
	}

	pick := domain.Pick{
		UserID:    userID,
		MatchupID: matchupID,
		Side:      side,
		Status:    domain.PickPending,
		Active:    true,
	}
	if err := s.store.InsertPick(ctx, &pick); err != nil {
		return domain.Pick{}, fmt.Errorf("insert pick: %w", err)
	}
	logging.Info(s.logger, "pick created",
		logging.FieldUser, userID,
		logging.FieldMatchup, matchupID,
		"side", string(side))
	return pick, nil
}

// releaseCurrent drops the user's existing active pick when it is still
// swappable.
func (s *Service) releaseCurrent(ctx context.Context, userID string) error {
	current, err := s.store.ActivePickForUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load active pick: %w", err)
	}

	matchup, err := s.store.GetMatchup(ctx, current.MatchupID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("load picked matchup: %w", err)
	}
	if err == nil && matchup.Status != domain.StatusScheduled {
		return ErrPickLocked
	}

	if err := s.store.DeletePick(ctx, current.ID); err != nil {
		return fmt.Errorf("release pick %s: %w", current.ID, err)
	}
	return nil
}

// Active returns the user's current active pick, or store.ErrNotFound.
func (s *Service) Active(ctx context.Context, userID string) (domain.Pick, error) {
	return s.store.ActivePickForUser(ctx, userID)
}

// ForceResolve is the administrative override for picks stuck on a stalled
// matchup: it assigns the outcome, deactivates the pick, and folds the
// outcome into the user's streak.
func (s *Service) ForceResolve(ctx context.Context, pickID string, outcome domain.PickStatus) (domain.Pick, error) {
	switch outcome {
	case domain.PickWin, domain.PickLoss, domain.PickPush:
	default:
		return domain.Pick{}, ErrInvalidOutcome
	}

	pick, err := s.store.GetPick(ctx, pickID)
	if err != nil {
		return domain.Pick{}, fmt.Errorf("load pick %s: %w", pickID, err)
	}

	pick.Status = outcome
	pick.Active = false
	if err := s.store.UpdatePick(ctx, pick); err != nil {
		return domain.Pick{}, fmt.Errorf("resolve pick %s: %w", pickID, err)
	}

	streak, err := s.store.GetStreak(ctx, pick.UserID, s.campaign)
	if errors.Is(err, store.ErrNotFound) {
		streak = domain.Streak{UserID: pick.UserID, Campaign: s.campaign}
	} else if err != nil {
		return pick, fmt.Errorf("load streak for %s: %w", pick.UserID, err)
	}
	streak.Apply(outcome)
	if err := s.store.SaveStreak(ctx, streak); err != nil {
		return pick, fmt.Errorf("save streak for %s: %w", pick.UserID, err)
	}

	logging.Warn(s.logger, "pick force-resolved",
		logging.FieldUser, pick.UserID,
		logging.FieldMatchup, pick.MatchupID,
		"outcome", string(outcome))
	return pick, nil
}

// Delete removes a pick outright without touching the streak.
func (s *Service) Delete(ctx context.Context, pickID string) error {
	if err := s.store.DeletePick(ctx, pickID); err != nil {
		return fmt.Errorf("delete pick %s: %w", pickID, err)
	}
	return nil
}
