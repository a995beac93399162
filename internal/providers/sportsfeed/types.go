package sportsfeed

// Wire shapes for the upstream's nested events[].competitions[0].competitors[]
// JSON. Field names mirror the upstream contract.

type scoreboardResponse struct {
	Events []eventResponse `json:"events"`
}

type eventResponse struct {
	ID           string                `json:"id"`
	Date         string                `json:"date"`
	Competitions []competitionResponse `json:"competitions"`
}

type competitionResponse struct {
	Competitors []competitorResponse `json:"competitors"`
	Status      statusResponse       `json:"status"`
	Broadcasts  []broadcastResponse  `json:"broadcasts"`
}

type competitorResponse struct {
	HomeAway string       `json:"homeAway"`
	Score    string       `json:"score"`
	Team     teamResponse `json:"team"`
}

type teamResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Logo        string `json:"logo"`
}

type statusResponse struct {
	Type statusTypeResponse `json:"type"`
}

type statusTypeResponse struct {
	Name string `json:"name"`
}

type broadcastResponse struct {
	Names []string `json:"names"`
}
