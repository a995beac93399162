package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"chainlink-service/internal/domain"
	"chainlink-service/internal/logging"
)

// retryingProvider wraps a SportsProvider with bounded exponential backoff.
// The default is a single attempt: cron runs are expected to abandon a
// failed fetch and self-correct on the next scheduled invocation, so
// retries are opt-in per deployment.
type retryingProvider struct {
	inner       SportsProvider
	logger      *slog.Logger
	maxAttempts int
	initial     time.Duration
}

// NewRetryingProvider wraps the given provider with retries. maxAttempts <= 1
// leaves the provider effectively undecorated.
func NewRetryingProvider(inner SportsProvider, logger *slog.Logger, maxAttempts int, initial time.Duration) SportsProvider {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	if initial <= 0 {
		initial = 200 * time.Millisecond
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		maxAttempts: maxAttempts,
		initial:     initial,
	}
}

func (r *retryingProvider) FetchSchedule(ctx context.Context, league domain.League) ([]domain.Matchup, error) {
	var matchups []domain.Matchup
	err := r.retry(ctx, "schedule", func() error {
		var fetchErr error
		matchups, fetchErr = r.inner.FetchSchedule(ctx, league)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return matchups, nil
}

func (r *retryingProvider) FetchScoreboard(ctx context.Context, league domain.League, date string) ([]domain.ScoreboardEvent, error) {
	var events []domain.ScoreboardEvent
	err := r.retry(ctx, "scoreboard", func() error {
		var fetchErr error
		events, fetchErr = r.inner.FetchScoreboard(ctx, league, date)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *retryingProvider) retry(ctx context.Context, op string, fn func() error) error {
	if r.inner == nil {
		return ErrProviderUnavailable
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.initial

	attempt := 0
	wrapped := func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		// Empty payloads and shape mismatches will not heal on retry.
		if _, ok := AsShapeError(err); ok {
			return backoff.Permanent(err)
		}
		if err == ErrEmptyPayload {
			return backoff.Permanent(err)
		}
		if attempt < r.maxAttempts {
			logging.Warn(logging.FromContext(ctx, r.logger), "provider fetch retry",
				"op", op, "attempt", attempt, "max_attempts", r.maxAttempts, "err", err)
		}
		return err
	}

	err := backoff.Retry(wrapped, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxAttempts-1)), ctx))
	if err != nil {
		logging.Warn(logging.FromContext(ctx, r.logger), "provider fetch failed",
			"op", op, "attempts", attempt, "err", err)
	}
	return err
}
