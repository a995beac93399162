package sportsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"chainlink-service/internal/domain"
	"chainlink-service/internal/providers"
)

// Config controls how the sportsfeed client reaches the upstream API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches schedules and scoreboards from the sportsfeed API and maps
// them to domain models.
type Client struct {
	baseURL    string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a sportsfeed client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

// FetchSchedule retrieves the current year's schedule for a league.
func (c *Client) FetchSchedule(ctx context.Context, league domain.League) ([]domain.Matchup, error) {
	path, err := c.leagueURL(league, "schedule")
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s?year=%d", path, c.now().UTC().Year())

	var payload scoreboardResponse
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}
	if len(payload.Events) == 0 {
		return nil, providers.ErrEmptyPayload
	}

	matchups := make([]domain.Matchup, 0, len(payload.Events))
	for _, e := range payload.Events {
		m, err := mapMatchup(league, e)
		if err != nil {
			return nil, err
		}
		matchups = append(matchups, m)
	}
	return matchups, nil
}

// FetchScoreboard retrieves the live scoreboard for a league and date.
func (c *Client) FetchScoreboard(ctx context.Context, league domain.League, date string) ([]domain.ScoreboardEvent, error) {
	path, err := c.leagueURL(league, "scoreboard")
	if err != nil {
		return nil, err
	}
	url := path
	if date != "" {
		url = fmt.Sprintf("%s?dates=%s", path, strings.ReplaceAll(date, "-", ""))
	}

	var payload scoreboardResponse
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}
	if len(payload.Events) == 0 {
		return nil, providers.ErrEmptyPayload
	}

	events := make([]domain.ScoreboardEvent, 0, len(payload.Events))
	for _, e := range payload.Events {
		ev, err := mapScoreboardEvent(e)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func (c *Client) leagueURL(league domain.League, endpoint string) (string, error) {
	segment, ok := leaguePaths[league]
	if !ok {
		return "", fmt.Errorf("%s: no url template for league %q", Name, league)
	}
	return fmt.Sprintf("%s/%s/%s", c.baseURL, segment, endpoint), nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   Name,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: unexpected status %d: %s", Name, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &providers.ShapeError{Provider: Name, Detail: err.Error()}
	}
	return nil
}

func normalizeBaseURL(base string) string {
	if base == "" {
		return defaultBaseURL
	}
	return strings.TrimRight(base, "/")
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func parseRetryAfter(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}
