package comicvine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const userAgent = "Shelfmark/0.1"

// ErrInvalidAPIKey is returned when the service rejects the configured key.
var ErrInvalidAPIKey = errors.New("comicvine: invalid api key")

// Issue is the slice of the issue search response that lookups consume. An
// issue carries both the parent series name and the individual issue title,
// which together reconstruct a series+subtitle pair that a bare volume
// search would not provide.
type Issue struct {
	Name        string      `json:"name"`
	IssueNumber string      `json:"issue_number"`
	Volume      IssueVolume `json:"volume"`
}

// IssueVolume is the parent series reference on an issue.
type IssueVolume struct {
	Name string `json:"name"`
}

type searchResponse struct {
	Error   string  `json:"error"`
	Results []Issue `json:"results"`
}

// Searcher defines the search operation used by lookups.
type Searcher interface {
	SearchIssues(ctx context.Context, query string, limit int) ([]Issue, error)
}

// Client provides access to the ComicVine search API. A key is mandatory.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a ComicVine client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("comicvine api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("comicvine base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchIssues queries the issue resource and returns up to limit matches.
func (c *Client) SearchIssues(ctx context.Context, query string, limit int) ([]Issue, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/search/")
	if err != nil {
		return nil, fmt.Errorf("parse comicvine url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("format", "json")
	params.Set("resources", "issue")
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("field_list", "name,issue_number,volume")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("comicvine search returned %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode comicvine response: %w", err)
	}

	switch payload.Error {
	case "OK":
		return payload.Results, nil
	case "Invalid API Key":
		return nil, ErrInvalidAPIKey
	default:
		return nil, fmt.Errorf("comicvine error: %s", payload.Error)
	}
}
