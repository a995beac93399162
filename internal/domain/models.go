package domain

import (
	"fmt"
	"strings"
	"time"
)

// League identifies a supported sports league.
type League string

const (
	LeagueNFL League = "NFL"
	LeagueNBA League = "NBA"
	LeagueMLB League = "MLB"
	LeagueNHL League = "NHL"
)

// ParseLeague validates a league code from user input.
func ParseLeague(raw string) (League, error) {
	switch League(strings.ToUpper(strings.TrimSpace(raw))) {
	case LeagueNFL:
		return LeagueNFL, nil
	case LeagueNBA:
		return LeagueNBA, nil
	case LeagueMLB:
		return LeagueMLB, nil
	case LeagueNHL:
		return LeagueNHL, nil
	default:
		return "", fmt.Errorf("unsupported league %q", raw)
	}
}

// Leagues returns every supported league.
func Leagues() []League {
	return []League{LeagueNFL, LeagueNBA, LeagueMLB, LeagueNHL}
}

// MatchupStatus mirrors the shared contract for matchup lifecycle states.
type MatchupStatus string

const (
	StatusScheduled  MatchupStatus = "SCHEDULED"
	StatusInProgress MatchupStatus = "IN_PROGRESS"
	StatusFinal      MatchupStatus = "FINAL"
	StatusPostponed  MatchupStatus = "POSTPONED"
	StatusCanceled   MatchupStatus = "CANCELED"
	StatusSuspended  MatchupStatus = "SUSPENDED"
	StatusDelayed    MatchupStatus = "DELAYED"
	StatusUnknown    MatchupStatus = "UNKNOWN"
)

// Stalled reports whether the status is an absorbing state that needs
// administrative intervention before any pick can settle.
func (s MatchupStatus) Stalled() bool {
	switch s {
	case StatusPostponed, StatusCanceled, StatusSuspended, StatusDelayed, StatusUnknown:
		return true
	}
	return false
}

// Side names one side of a matchup. SideNone marks a push (no winner).
type Side string

const (
	SideHome Side = "HOME"
	SideAway Side = "AWAY"
	SideNone Side = "NONE"
)

// Operator is the comparison applied to home vs away values when a matchup
// goes final. Keeping it on the matchup lets the same settlement code work
// across differently-scored sports.
type Operator string

const (
	OpLessThan           Operator = "LESS_THAN"
	OpGreaterThan        Operator = "GREATER_THAN"
	OpEqualTo            Operator = "EQUAL_TO"
	OpNotEqualTo         Operator = "NOT_EQUAL_TO"
	OpLessThanOrEqual    Operator = "LESS_THAN_OR_EQUAL_TO"
	OpGreaterThanOrEqual Operator = "GREATER_THAN_OR_EQUAL_TO"
)

// Compare applies the operator to an ordered pair of values.
func (o Operator) Compare(a, b float64) bool {
	switch o {
	case OpLessThan:
		return a < b
	case OpGreaterThan:
		return a > b
	case OpEqualTo:
		return a == b
	case OpNotEqualTo:
		return a != b
	case OpLessThanOrEqual:
		return a <= b
	case OpGreaterThanOrEqual:
		return a >= b
	default:
		return false
	}
}

// Participant is one side's descriptor within a matchup. Value carries the
// side's running score.
type Participant struct {
	Name       string  `json:"name"`
	ExternalID string  `json:"externalId"`
	Image      string  `json:"image"`
	Value      float64 `json:"value"`
}

// Matchup is one scheduled contest tracked by the system. A matchup is
// uniquely identified by (league, external id) for de-duplication against
// previously stored records.
type Matchup struct {
	ID         string        `json:"id"`
	League     League        `json:"league"`
	ExternalID string        `json:"externalId"`
	Home       Participant   `json:"home"`
	Away       Participant   `json:"away"`
	Status     MatchupStatus `json:"status"`
	StartTime  time.Time     `json:"startTime"`
	Network    string        `json:"network"`
	Operator   Operator      `json:"operator"`
	Question   string        `json:"question"`
	Winner     Side          `json:"winner"`
}

// ScoreboardEvent is the normalized live state of one upstream game.
type ScoreboardEvent struct {
	ExternalID string        `json:"externalId"`
	Status     MatchupStatus `json:"status"`
	HomeScore  float64       `json:"homeScore"`
	AwayScore  float64       `json:"awayScore"`
}

// PickStatus is the resolution state of a user's pick.
type PickStatus string

const (
	PickPending PickStatus = "PENDING"
	PickWin     PickStatus = "WIN"
	PickLoss    PickStatus = "LOSS"
	PickPush    PickStatus = "PUSH"
)

// Pick is a user's single active selection against one matchup. At most one
// active pick per user exists at a time; the rule is enforced by the picks
// service, not by a database constraint.
type Pick struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	MatchupID string     `json:"matchupId"`
	Side      Side       `json:"side"`
	Status    PickStatus `json:"status"`
	Active    bool       `json:"active"`
}

// Streak is a user's consecutive-win counter plus aggregate record, scoped
// to a campaign period.
type Streak struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Campaign string `json:"campaign"`
	Count    int    `json:"count"`
	Longest  int    `json:"longest"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Pushes   int    `json:"pushes"`
}

// Apply folds one pick outcome into the streak: extend on WIN, reset on
// LOSS, unchanged count on PUSH.
func (s *Streak) Apply(outcome PickStatus) {
	switch outcome {
	case PickWin:
		s.Count++
		s.Wins++
		if s.Count > s.Longest {
			s.Longest = s.Count
		}
	case PickLoss:
		s.Count = 0
		s.Losses++
	case PickPush:
		s.Pushes++
	}
}
