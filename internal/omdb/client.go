// Package omdb is a minimal client for the OMDb movie-metadata API
// (title lookup only). The provider is treated as untrusted: every failure
// mode maps to a typed error and nothing is retried.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const DefaultBaseURL = "http://www.omdbapi.com/"

var (
	// ErrMissingAPIKey is returned before any network call when the client
	// was built without a credential.
	ErrMissingAPIKey = errors.New("omdb api key not configured")

	// ErrUpstream covers transport failures, timeouts, and non-200 responses.
	ErrUpstream = errors.New("omdb request failed")

	// ErrTitleNotFound is the provider's own "not found" answer, reported in
	// the JSON body with a 200 status. Distinct from ErrUpstream so callers
	// can tell a bad title from a broken provider.
	ErrTitleNotFound = errors.New("title not found")
)

// Payload is the raw OMDb response for a title lookup. Field values are
// strings as sent by the provider; Normalize turns them into a movie record.
type Payload struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Director   string `json:"Director"`
	Genre      string `json:"Genre"`
	Poster     string `json:"Poster"`
	ImdbID     string `json:"imdbID"`
	ImdbRating string `json:"imdbRating"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

// NewClient builds a client for the given API key. A nil httpc gets a
// default client with a 10 second timeout; a slow provider blocks only the
// request that hit it.
func NewClient(apiKey, baseURL string, httpc *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{apiKey: apiKey, baseURL: baseURL, httpc: httpc}
}

// Fetch performs one title lookup. No retries: a failed attempt is surfaced
// immediately and the caller decides whether to resubmit.
func (c *Client) Fetch(ctx context.Context, title string) (*Payload, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("t", title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var p Payload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}

	// OMDb signals "not found" in the body with a 200 status, so the
	// Response field is the authority here, not the HTTP code.
	if p.Response != "True" {
		msg := p.Error
		if msg == "" {
			msg = "movie not found"
		}
		return nil, fmt.Errorf("%w: %s", ErrTitleNotFound, msg)
	}

	return &p, nil
}
