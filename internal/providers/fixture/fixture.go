// Package fixture provides a canned SportsProvider for local development
// and tests, so the service can run without upstream credentials.
package fixture

import (
	"context"
	"fmt"
	"time"

	"chainlink-service/internal/domain"
	"chainlink-service/internal/providers"
)

// Name is the provider identifier used in logs and metrics.
const Name = "fixture"

// Provider serves deterministic matchups and scoreboard events.
type Provider struct {
	now func() time.Time
}

// New constructs a fixture provider.
func New() *Provider {
	return &Provider{now: time.Now}
}

// FetchSchedule returns two scheduled matchups starting later today.
func (p *Provider) FetchSchedule(_ context.Context, league domain.League) ([]domain.Matchup, error) {
	start := p.now().UTC().Truncate(time.Hour).Add(4 * time.Hour)
	return []domain.Matchup{
		p.matchup(league, 1, "Fixture Home A", "Fixture Away A", start),
		p.matchup(league, 2, "Fixture Home B", "Fixture Away B", start.Add(time.Hour)),
	}, nil
}

// FetchScoreboard reports the first fixture game final and the second live.
func (p *Provider) FetchScoreboard(_ context.Context, league domain.League, _ string) ([]domain.ScoreboardEvent, error) {
	return []domain.ScoreboardEvent{
		{ExternalID: p.externalID(league, 1), Status: domain.StatusFinal, HomeScore: 27, AwayScore: 20},
		{ExternalID: p.externalID(league, 2), Status: domain.StatusInProgress, HomeScore: 3, AwayScore: 7},
	}, nil
}

func (p *Provider) matchup(league domain.League, n int, home, away string, start time.Time) domain.Matchup {
	return domain.Matchup{
		League:     league,
		ExternalID: p.externalID(league, n),
		Home:       domain.Participant{Name: home, ExternalID: fmt.Sprintf("%d01", n)},
		Away:       domain.Participant{Name: away, ExternalID: fmt.Sprintf("%d02", n)},
		Status:     domain.StatusScheduled,
		StartTime:  start,
		Network:    "FIX",
		Operator:   domain.OpGreaterThan,
		Question:   fmt.Sprintf("Who wins: %s or %s?", away, home),
		Winner:     domain.SideNone,
	}
}

func (p *Provider) externalID(league domain.League, n int) string {
	return fmt.Sprintf("fixture-%s-%d", league, n)
}

var _ providers.SportsProvider = (*Provider)(nil)
