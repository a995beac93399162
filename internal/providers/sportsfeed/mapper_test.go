package sportsfeed

import (
	"testing"

	"chainlink-service/internal/domain"
	"chainlink-service/internal/providers"
)

func sampleEvent() eventResponse {
	return eventResponse{
		ID:   "401547401",
		Date: "2026-01-15T20:15Z",
		Competitions: []competitionResponse{{
			Competitors: []competitorResponse{
				{HomeAway: "home", Score: "24", Team: teamResponse{ID: "12", DisplayName: "Kansas City Chiefs", Logo: "chiefs.png"}},
				{HomeAway: "away", Score: "17", Team: teamResponse{ID: "33", DisplayName: "Baltimore Ravens", Logo: "ravens.png"}},
			},
			Status:     statusResponse{Type: statusTypeResponse{Name: "STATUS_IN_PROGRESS"}},
			Broadcasts: []broadcastResponse{{Names: []string{"CBS"}}},
		}},
	}
}

func TestMapMatchup(t *testing.T) {
	m, err := mapMatchup(domain.LeagueNFL, sampleEvent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ExternalID != "401547401" || m.League != domain.LeagueNFL {
		t.Fatalf("unexpected identity: %+v", m)
	}
	if m.Home.Name != "Kansas City Chiefs" || m.Home.Value != 24 {
		t.Fatalf("unexpected home side: %+v", m.Home)
	}
	if m.Away.Name != "Baltimore Ravens" || m.Away.Value != 17 {
		t.Fatalf("unexpected away side: %+v", m.Away)
	}
	if m.Status != domain.StatusInProgress {
		t.Fatalf("unexpected status: %s", m.Status)
	}
	if m.Network != "CBS" {
		t.Fatalf("unexpected network: %s", m.Network)
	}
	if m.Operator != domain.OpGreaterThan {
		t.Fatalf("expected default GREATER_THAN operator, got %s", m.Operator)
	}
	if m.Question == "" {
		t.Fatalf("expected generated question")
	}
	if m.Winner != domain.SideNone {
		t.Fatalf("expected no winner on ingest")
	}
}

func TestMapMatchupRejectsMissingCompetitions(t *testing.T) {
	e := sampleEvent()
	e.Competitions = nil
	_, err := mapMatchup(domain.LeagueNFL, e)
	if _, ok := providers.AsShapeError(err); !ok {
		t.Fatalf("expected shape error, got %v", err)
	}
}

func TestMapMatchupRejectsMissingSide(t *testing.T) {
	e := sampleEvent()
	e.Competitions[0].Competitors = e.Competitions[0].Competitors[:1]
	_, err := mapMatchup(domain.LeagueNFL, e)
	if _, ok := providers.AsShapeError(err); !ok {
		t.Fatalf("expected shape error, got %v", err)
	}
}

func TestMapMatchupRejectsBadDate(t *testing.T) {
	e := sampleEvent()
	e.Date = "tomorrow-ish"
	_, err := mapMatchup(domain.LeagueNFL, e)
	if _, ok := providers.AsShapeError(err); !ok {
		t.Fatalf("expected shape error, got %v", err)
	}
}

func TestMapScoreboardEvent(t *testing.T) {
	ev, err := mapScoreboardEvent(sampleEvent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.ExternalID != "401547401" || ev.Status != domain.StatusInProgress {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.HomeScore != 24 || ev.AwayScore != 17 {
		t.Fatalf("unexpected scores: %+v", ev)
	}
}

func TestMapStatusVocabulary(t *testing.T) {
	cases := map[string]domain.MatchupStatus{
		"STATUS_SCHEDULED":   domain.StatusScheduled,
		"STATUS_IN_PROGRESS": domain.StatusInProgress,
		"STATUS_HALFTIME":    domain.StatusInProgress,
		"STATUS_END_PERIOD":  domain.StatusInProgress,
		"STATUS_FINAL":       domain.StatusFinal,
		"STATUS_POSTPONED":   domain.StatusPostponed,
		"STATUS_CANCELED":    domain.StatusCanceled,
		"STATUS_SUSPENDED":   domain.StatusSuspended,
		"STATUS_DELAYED":     domain.StatusDelayed,
		"STATUS_WEIRD":       domain.StatusUnknown,
	}
	for raw, want := range cases {
		if got := mapStatus(raw); got != want {
			t.Fatalf("mapStatus(%s): expected %s, got %s", raw, want, got)
		}
	}
}

func TestParseScoreTolerant(t *testing.T) {
	if parseScore("") != 0 || parseScore("n/a") != 0 {
		t.Fatalf("expected zero for missing/bad scores")
	}
	if parseScore("3.5") != 3.5 {
		t.Fatalf("expected float scores parsed")
	}
}
