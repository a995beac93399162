package sportsfeed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"chainlink-service/internal/domain"
	"chainlink-service/internal/providers"
)

func mapMatchup(league domain.League, e eventResponse) (domain.Matchup, error) {
	comp, home, away, err := splitCompetition(e)
	if err != nil {
		return domain.Matchup{}, err
	}

	start, err := time.Parse(time.RFC3339, e.Date)
	if err != nil {
		// Some leagues omit seconds.
		start, err = time.Parse("2006-01-02T15:04Z07:00", e.Date)
		if err != nil {
			return domain.Matchup{}, &providers.ShapeError{Provider: Name, Detail: fmt.Sprintf("event %s: bad date %q", e.ID, e.Date)}
		}
	}

	homeSide := mapParticipant(home)
	awaySide := mapParticipant(away)

	return domain.Matchup{
		League:     league,
		ExternalID: e.ID,
		Home:       homeSide,
		Away:       awaySide,
		Status:     mapStatus(comp.Status.Type.Name),
		StartTime:  start.UTC(),
		Network:    mapNetwork(comp),
		Operator:   domain.OpGreaterThan,
		Question:   buildQuestion(homeSide.Name, awaySide.Name),
		Winner:     domain.SideNone,
	}, nil
}

func mapScoreboardEvent(e eventResponse) (domain.ScoreboardEvent, error) {
	comp, home, away, err := splitCompetition(e)
	if err != nil {
		return domain.ScoreboardEvent{}, err
	}

	return domain.ScoreboardEvent{
		ExternalID: e.ID,
		Status:     mapStatus(comp.Status.Type.Name),
		HomeScore:  parseScore(home.Score),
		AwayScore:  parseScore(away.Score),
	}, nil
}

// splitCompetition validates the nested shape: one competition carrying
// exactly one home and one away competitor.
func splitCompetition(e eventResponse) (competitionResponse, competitorResponse, competitorResponse, error) {
	var zero competitorResponse
	if len(e.Competitions) == 0 {
		return competitionResponse{}, zero, zero, &providers.ShapeError{Provider: Name, Detail: fmt.Sprintf("event %s: no competitions", e.ID)}
	}
	comp := e.Competitions[0]

	var home, away competitorResponse
	var haveHome, haveAway bool
	for _, c := range comp.Competitors {
		switch strings.ToLower(c.HomeAway) {
		case "home":
			home, haveHome = c, true
		case "away":
			away, haveAway = c, true
		}
	}
	if !haveHome || !haveAway {
		return competitionResponse{}, zero, zero, &providers.ShapeError{Provider: Name, Detail: fmt.Sprintf("event %s: missing home/away competitor", e.ID)}
	}
	return comp, home, away, nil
}

func mapParticipant(c competitorResponse) domain.Participant {
	return domain.Participant{
		Name:       c.Team.DisplayName,
		ExternalID: c.Team.ID,
		Image:      c.Team.Logo,
		Value:      parseScore(c.Score),
	}
}

func mapStatus(name string) domain.MatchupStatus {
	switch strings.ToUpper(name) {
	case upstreamScheduled:
		return domain.StatusScheduled
	case upstreamInProgress, upstreamHalftime, upstreamEndPeriod:
		return domain.StatusInProgress
	case upstreamFinal:
		return domain.StatusFinal
	case upstreamPostponed:
		return domain.StatusPostponed
	case upstreamCanceled:
		return domain.StatusCanceled
	case upstreamSuspended:
		return domain.StatusSuspended
	case upstreamDelayed:
		return domain.StatusDelayed
	default:
		return domain.StatusUnknown
	}
}

func mapNetwork(comp competitionResponse) string {
	for _, b := range comp.Broadcasts {
		for _, name := range b.Names {
			if name != "" {
				return name
			}
		}
	}
	return ""
}

// parseScore tolerates the upstream's string-typed scores; missing or
// malformed scores read as zero.
func parseScore(raw string) float64 {
	if raw == "" {
		return 0
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return val
}

func buildQuestion(home, away string) string {
	return fmt.Sprintf("Who wins: %s or %s?", away, home)
}
