// Package settlement turns observed scoreboard changes into persisted
// matchup updates and, on a final, resolves every active pick against the
// decided winner.
package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"chainlink-service/internal/docstore"
	"chainlink-service/internal/domain"
	"chainlink-service/internal/logging"
	"chainlink-service/internal/metrics"
	"chainlink-service/internal/store"
)

// Service applies scoreboard transitions to stored matchups and settles
// picks when a matchup goes final.
type Service struct {
	store     store.Store
	publisher docstore.Publisher
	recorder  *metrics.Recorder
	logger    *slog.Logger
	campaign  string
}

// NewService wires a settlement service. Publisher may be nil when no
// results replica is configured.
func NewService(st store.Store, publisher docstore.Publisher, recorder *metrics.Recorder, logger *slog.Logger, campaign string) *Service {
	if publisher == nil {
		publisher = docstore.NopPublisher{}
	}
	return &Service{
		store:     st,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
		campaign:  campaign,
	}
}

// Apply folds one scoreboard event into the matchup, persists the result,
// and settles picks on a final. The returned matchup carries the updated
// status, values, and winner for downstream cache writes. A matchup that is
// already FINAL is absorbing and comes back unchanged.
func (s *Service) Apply(ctx context.Context, m domain.Matchup, ev domain.ScoreboardEvent) (domain.Matchup, error) {
	if m.Status == domain.StatusFinal {
		return m, nil
	}

	transition := domain.ClassifyTransition(m.Status, ev.Status)

	m.Home.Value = ev.HomeScore
	m.Away.Value = ev.AwayScore

	switch transition {
	case domain.TransitionFinal:
		m.Status = domain.StatusFinal
		m.Winner = domain.DetermineWinner(m.Operator, m.Home.Value, m.Away.Value)
	case domain.TransitionInProgress:
		m.Status = domain.StatusInProgress
	case domain.TransitionStalled:
		m.Status = ev.Status
		logging.Warn(s.logger, "matchup stalled, picks held pending",
			logging.FieldMatchup, m.ID,
			logging.FieldLeague, string(m.League),
			"status", string(ev.Status))
	}

	if err := s.store.UpdateMatchup(ctx, m); err != nil {
		return m, fmt.Errorf("update matchup %s: %w", m.ID, err)
	}

	if transition != domain.TransitionFinal {
		return m, nil
	}

	if err := s.settlePicks(ctx, m); err != nil {
		return m, err
	}
	if err := s.publisher.PublishResult(ctx, m); err != nil {
		// The relational store already holds the result; a replica miss is
		// not worth failing the run over.
		logging.Error(s.logger, "publish settled result failed", err,
			logging.FieldMatchup, m.ID)
	}
	return m, nil
}

// settlePicks resolves every active pick on the matchup concurrently. Each
// pick is deactivated with its outcome, and the owner's streak absorbs the
// result.
func (s *Service) settlePicks(ctx context.Context, m domain.Matchup) error {
	picks, err := s.store.ListActivePicksForMatchup(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("list active picks for %s: %w", m.ID, err)
	}
	if len(picks) == 0 {
		return nil
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, p := range picks {
		wg.Add(1)
		go func(p domain.Pick) {
			defer wg.Done()
			if err := s.settlePick(ctx, m, p); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(p)
	}
	wg.Wait()
	return errors.Join(errs...)
}

func (s *Service) settlePick(ctx context.Context, m domain.Matchup, p domain.Pick) error {
	outcome := domain.ResolvePick(p.Side, m.Winner)

	p.Status = outcome
	p.Active = false
	if err := s.store.UpdatePick(ctx, p); err != nil {
		return fmt.Errorf("settle pick %s: %w", p.ID, err)
	}

	if err := s.applyToStreak(ctx, p.UserID, outcome); err != nil {
		return err
	}

	s.recorder.RecordSettlement(string(m.League), string(outcome))
	logging.Info(s.logger, "pick settled",
		logging.FieldMatchup, m.ID,
		logging.FieldUser, p.UserID,
		"outcome", string(outcome))
	return nil
}

func (s *Service) applyToStreak(ctx context.Context, userID string, outcome domain.PickStatus) error {
	streak, err := s.store.GetStreak(ctx, userID, s.campaign)
	if errors.Is(err, store.ErrNotFound) {
		streak = domain.Streak{UserID: userID, Campaign: s.campaign}
	} else if err != nil {
		return fmt.Errorf("load streak for %s: %w", userID, err)
	}

	streak.Apply(outcome)
	if err := s.store.SaveStreak(ctx, streak); err != nil {
		return fmt.Errorf("save streak for %s: %w", userID, err)
	}
	return nil
}
