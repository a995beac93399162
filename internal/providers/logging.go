package providers

import (
	"context"
	"log/slog"
	"time"

	"chainlink-service/internal/domain"
	"chainlink-service/internal/logging"
	"chainlink-service/internal/metrics"
)

// loggingProvider decorates a SportsProvider with call logging and metrics.
type loggingProvider struct {
	inner    SportsProvider
	name     string
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// NewLoggingProvider wraps the provider with per-call logs and recorder metrics.
func NewLoggingProvider(inner SportsProvider, name string, logger *slog.Logger, recorder *metrics.Recorder) SportsProvider {
	return &loggingProvider{inner: inner, name: name, logger: logger, recorder: recorder}
}

func (p *loggingProvider) FetchSchedule(ctx context.Context, league domain.League) ([]domain.Matchup, error) {
	start := time.Now()
	matchups, err := p.inner.FetchSchedule(ctx, league)
	p.record(ctx, "schedule", league, len(matchups), time.Since(start), err)
	return matchups, err
}

func (p *loggingProvider) FetchScoreboard(ctx context.Context, league domain.League, date string) ([]domain.ScoreboardEvent, error) {
	start := time.Now()
	events, err := p.inner.FetchScoreboard(ctx, league, date)
	p.record(ctx, "scoreboard", league, len(events), time.Since(start), err)
	return events, err
}

func (p *loggingProvider) record(ctx context.Context, op string, league domain.League, count int, duration time.Duration, err error) {
	p.recorder.RecordProviderAttempt(p.name, duration, err)
	if rl, ok := AsRateLimitError(err); ok {
		p.recorder.RecordRateLimit(p.name, rl.RetryAfter)
	}

	logger := logging.FromContext(ctx, p.logger)
	if err != nil {
		logging.Error(logger, "provider fetch failed", err,
			logging.FieldProvider, p.name,
			logging.FieldLeague, string(league),
			"op", op,
			logging.FieldDurationMS, duration.Milliseconds(),
		)
		return
	}
	logging.Info(logger, "provider fetch complete",
		logging.FieldProvider, p.name,
		logging.FieldLeague, string(league),
		"op", op,
		logging.FieldCount, count,
		logging.FieldDurationMS, duration.Milliseconds(),
	)
}
