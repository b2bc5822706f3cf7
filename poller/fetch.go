package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"termsuji-spectate/types"
)

// Fetcher reads one tournament snapshot.
type Fetcher interface {
	Fetch(ctx context.Context) (*types.TournamentState, error)
}

// StatusError is returned for a non-2xx response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.Code)
}

// HTTPFetcher GETs the snapshot endpoint and decodes the JSON body.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

// NewHTTPFetcher creates a fetcher for url with a per-request timeout.
func NewHTTPFetcher(url string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

// Fetch performs one GET. Network errors, non-2xx statuses and undecodable
// bodies are all errors; the caller treats them alike.
func (f *HTTPFetcher) Fetch(ctx context.Context) (*types.TournamentState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: f.URL, Code: resp.StatusCode}
	}

	var state types.TournamentState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.URL, err)
	}
	return &state, nil
}
