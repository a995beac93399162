package providers

import (
	"context"
	"log/slog"
	"time"

	"chainlink-service/internal/domain"
)

// rateLimitedProvider wraps a SportsProvider and enforces a minimum interval
// between upstream calls to stay inside the provider's quota.
type rateLimitedProvider struct {
	next     SportsProvider
	interval time.Duration
	ticker   *time.Ticker
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a SportsProvider that limits calls to the
// given interval. Calls block until the interval elapses.
func NewRateLimitedProvider(next SportsProvider, interval time.Duration, logger *slog.Logger) SportsProvider {
	if interval <= 0 {
		interval = time.Minute
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) FetchSchedule(ctx context.Context, league domain.League) ([]domain.Matchup, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return p.next.FetchSchedule(ctx, league)
}

func (p *rateLimitedProvider) FetchScoreboard(ctx context.Context, league domain.League, date string) ([]domain.ScoreboardEvent, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return p.next.FetchScoreboard(ctx, league, date)
}

func (p *rateLimitedProvider) wait(ctx context.Context) error {
	if p == nil || p.next == nil {
		if p != nil && p.logger != nil {
			p.logger.Warn("provider unavailable", slog.String("provider", "rate-limited"))
		}
		return ErrProviderUnavailable
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ticker.C:
		return nil
	}
}

// Close stops the interval ticker.
func (p *rateLimitedProvider) Close() {
	if p != nil && p.ticker != nil {
		p.ticker.Stop()
	}
}
