package sportsfeed

import "chainlink-service/internal/domain"

// Name is the provider identifier used in logs and metrics.
const Name = "sportsfeed"

const defaultBaseURL = "https://site.api.sportsfeed.io/v2/sports"

// leaguePaths maps a league to its URL template segment. The upstream keys
// its endpoints by sport/league pairs.
var leaguePaths = map[domain.League]string{
	domain.LeagueNFL: "football/nfl",
	domain.LeagueNBA: "basketball/nba",
	domain.LeagueMLB: "baseball/mlb",
	domain.LeagueNHL: "hockey/nhl",
}

// Upstream status vocabulary. These strings are the upstream's contract and
// out of this system's control.
const (
	upstreamScheduled  = "STATUS_SCHEDULED"
	upstreamInProgress = "STATUS_IN_PROGRESS"
	upstreamHalftime   = "STATUS_HALFTIME"
	upstreamEndPeriod  = "STATUS_END_PERIOD"
	upstreamFinal      = "STATUS_FINAL"
	upstreamPostponed  = "STATUS_POSTPONED"
	upstreamCanceled   = "STATUS_CANCELED"
	upstreamSuspended  = "STATUS_SUSPENDED"
	upstreamDelayed    = "STATUS_DELAYED"
)
