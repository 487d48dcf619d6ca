package googlebooks

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

// ErrRateLimited is returned when the API answers 429.
var ErrRateLimited = errors.New("googlebooks: rate limited")

// Volume is the slice of the volumes response that lookups consume.
type Volume struct {
	Title    string
	Subtitle string
}

type volumeInfo struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type searchResponse struct {
	Items []struct {
		VolumeInfo volumeInfo `json:"volumeInfo"`
	} `json:"items"`
}

// Searcher defines the search operation used by lookups.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Volume, error)
}

// Client provides access to the Google Books volumes API. The API key is
// optional; without one the informal daily quota is much lower.
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

// New creates a Google Books client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("googlebooks base url required")
	}
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Search queries the volumes endpoint and returns up to maxResults matches.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Volume, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/volumes")
	if err != nil {
		return nil, fmt.Errorf("parse googlebooks url: %w", err)
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("googlebooks search returned %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode googlebooks response: %w", err)
	}

	volumes := make([]Volume, 0, len(payload.Items))
	for _, item := range payload.Items {
		volumes = append(volumes, Volume{
			Title:    item.VolumeInfo.Title,
			Subtitle: item.VolumeInfo.Subtitle,
		})
	}
	return volumes, nil
}
