// Package wiki provides a read-only encyclopedia client.
//
// Lookups are language-scoped and run in two sequential steps: resolve
// the search term to a canonical page title, then fetch that page's
// summary and canonical URL. There are no retries and no caching.
package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// requestTimeout bounds a single encyclopedia call.
const requestTimeout = 15 * time.Second

// ErrPageNotFound indicates the search term resolved to no page.
var ErrPageNotFound = errors.New("page not found")

// Summary is the extracted result of a page lookup.
type Summary struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
	URL     string `json:"url"`
}

// Config contains all required parameters for the encyclopedia client.
type Config struct {
	Language string // language code selecting the wiki edition, e.g. "pt"
	Logger   *slog.Logger

	// BaseURL overrides the wiki host (tests). Optional; defaults to
	// https://<language>.wikipedia.org.
	BaseURL string

	// HTTPClient overrides the default client (tests). Optional.
	HTTPClient *http.Client
}

// Client performs language-scoped page summary lookups.
// Safe for concurrent use.
type Client struct {
	baseURL    string
	language   string
	logger     *slog.Logger
	httpClient *http.Client
}

// NewClient creates an encyclopedia client. The query language is fixed
// at construction; it selects which wiki edition all lookups hit.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Language == "" {
		return nil, errors.New("language is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.wikipedia.org", cfg.Language)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: requestTimeout}
	}

	return &Client{
		baseURL:    baseURL,
		language:   cfg.Language,
		logger:     cfg.Logger,
		httpClient: hc,
	}, nil
}

// Summary looks up the page matching searchTerm and returns its summary
// text and canonical URL. Returns ErrPageNotFound when the term resolves
// to no page.
func (c *Client) Summary(ctx context.Context, searchTerm string) (*Summary, error) {
	title, err := c.resolveTitle(ctx, searchTerm)
	if err != nil {
		return nil, err
	}

	return c.pageSummary(ctx, title)
}

// resolveTitle resolves a free-form search term to a canonical page title.
func (c *Client) resolveTitle(ctx context.Context, searchTerm string) (string, error) {
	endpoint := fmt.Sprintf("%s/w/api.php?action=opensearch&format=json&limit=1&search=%s",
		c.baseURL, url.QueryEscape(searchTerm))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("building search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	// Opensearch replies with [term, [titles], [descriptions], [urls]].
	var raw []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("decoding search response: %w", err)
	}
	if len(raw) < 2 {
		return "", fmt.Errorf("%w: %q", ErrPageNotFound, searchTerm)
	}

	var titles []string
	if err := json.Unmarshal(raw[1], &titles); err != nil {
		return "", fmt.Errorf("decoding search titles: %w", err)
	}
	if len(titles) == 0 || strings.TrimSpace(titles[0]) == "" {
		return "", fmt.Errorf("%w: %q", ErrPageNotFound, searchTerm)
	}

	return titles[0], nil
}

// pageSummary fetches the REST summary for a resolved title.
func (c *Client) pageSummary(ctx context.Context, title string) (*Summary, error) {
	endpoint := fmt.Sprintf("%s/api/rest_v1/page/summary/%s",
		c.baseURL, url.PathEscape(strings.ReplaceAll(title, " ", "_")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building summary request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("summary request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("wiki summary call",
		"title", title,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %q", ErrPageNotFound, title)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("summary returned status %d", resp.StatusCode)
	}

	var body struct {
		Title       string `json:"title"`
		Extract     string `json:"extract"`
		ContentURLs struct {
			Desktop struct {
				Page string `json:"page"`
			} `json:"desktop"`
		} `json:"content_urls"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding summary response: %w", err)
	}

	if strings.TrimSpace(body.Extract) == "" {
		return nil, fmt.Errorf("%w: %q has no summary", ErrPageNotFound, title)
	}

	return &Summary{
		Title:   body.Title,
		Extract: body.Extract,
		URL:     body.ContentURLs.Desktop.Page,
	}, nil
}
