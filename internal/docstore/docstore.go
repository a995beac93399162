// Package docstore publishes settled matchups to a document-store replica so
// downstream consumers (analytics, notification fan-out) can read results
// without touching the primary database.
package docstore

import (
	"context"

	"chainlink-service/internal/domain"
)

// Publisher receives matchups once they settle. Publishing is best-effort:
// a failed publish is logged, never rolled back, because the relational
// store stays authoritative.
type Publisher interface {
	PublishResult(ctx context.Context, m domain.Matchup) error
}

// NopPublisher discards everything. Used when no replica is configured.
type NopPublisher struct{}

func (NopPublisher) PublishResult(context.Context, domain.Matchup) error { return nil }

var _ Publisher = NopPublisher{}
