// Package esports provides a read-only client for the team statistics API.
//
// The client fetches the configured team's roster, scheduled matches,
// and past results. It performs no retries and no caching: every call
// is a single outbound request whose failure is returned to the caller.
package esports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// requestTimeout bounds a single statistics API call.
const requestTimeout = 15 * time.Second

// ErrUnexpectedStatus indicates the statistics API answered with a
// non-200 status code.
var ErrUnexpectedStatus = errors.New("unexpected status from stats API")

// Config contains all required parameters for the statistics client.
type Config struct {
	BaseURL  string // e.g. "https://api.pandascore.co"
	Token    string // bearer token; empty disables the Authorization header
	TeamSlug string // team identifier used in request paths
	Logger   *slog.Logger

	// HTTPClient overrides the default client (tests). Optional.
	HTTPClient *http.Client
}

// Client is a read-only client for the team statistics API.
// Safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	teamSlug   string
	logger     *slog.Logger
	httpClient *http.Client
}

// NewClient creates a statistics client for a single team.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if cfg.TeamSlug == "" {
		return nil, errors.New("team slug is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: requestTimeout}
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		teamSlug:   cfg.TeamSlug,
		logger:     cfg.Logger,
		httpClient: hc,
	}, nil
}

// Roster fetches the team's full roster.
// Entries are returned as-is, including records missing a name or role.
func (c *Client) Roster(ctx context.Context) ([]Player, error) {
	var players []Player
	if err := c.get(ctx, "players", &players); err != nil {
		return nil, fmt.Errorf("fetching roster: %w", err)
	}
	return players, nil
}

// UpcomingMatches fetches the team's scheduled matches in source order.
// The source may include matches whose time has already passed; callers
// filter by time.
func (c *Client) UpcomingMatches(ctx context.Context) ([]Match, error) {
	var matches []Match
	if err := c.get(ctx, "matches/upcoming", &matches); err != nil {
		return nil, fmt.Errorf("fetching upcoming matches: %w", err)
	}
	return matches, nil
}

// RecentResults fetches the team's past results, most recent first.
func (c *Client) RecentResults(ctx context.Context) ([]Result, error) {
	var results []Result
	if err := c.get(ctx, "matches/results", &results); err != nil {
		return nil, fmt.Errorf("fetching recent results: %w", err)
	}
	return results, nil
}

// get performs one GET against /teams/{slug}/{path} and decodes the
// JSON body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	endpoint := fmt.Sprintf("%s/teams/%s/%s", c.baseURL, url.PathEscape(c.teamSlug), path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("stats request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("stats API call",
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode != http.StatusOK {
		// Read a short prefix for diagnostics; never echoed to end users.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
