package server

import (
	"log/slog"
	"net/http"
	"strings"

	"chainlink-service/internal/config"
	"chainlink-service/internal/metrics"
	"chainlink-service/internal/providers"
	"chainlink-service/internal/providers/fixture"
	"chainlink-service/internal/providers/sportsfeed"
)

// buildProvider assembles the upstream provider with the shared decorator
// chain: logging/metrics innermost, then the optional rate limiter, then
// retries (a single attempt unless configured otherwise).
func buildProvider(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) providers.SportsProvider {
	name := strings.ToLower(strings.TrimSpace(cfg.Provider))

	var base providers.SportsProvider
	switch name {
	case fixture.Name:
		base = fixture.New()
	default:
		name = sportsfeed.Name
		base = sportsfeed.NewClient(sportsfeed.Config{
			BaseURL:    cfg.Sportsfeed.BaseURL,
			HTTPClient: &http.Client{Timeout: cfg.Sportsfeed.Timeout},
		})
	}

	wrapped := providers.NewLoggingProvider(base, name, logger, recorder)
	if cfg.Sportsfeed.MinInterval > 0 {
		wrapped = providers.NewRateLimitedProvider(wrapped, cfg.Sportsfeed.MinInterval, logger)
	}
	return providers.NewRetryingProvider(wrapped, logger, cfg.Sportsfeed.RetryAttempts, cfg.Sportsfeed.RetryBackoff)
}
