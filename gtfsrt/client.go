package gtfsrt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fetches GTFS-RT protobuf feeds over HTTP.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client with the given per-request timeout. A zero
// timeout means no limit beyond the request context.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves a single feed and returns the raw protobuf bytes.
// Returns nil for an empty URL (allows optional feeds).
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// FetchTripUpdates retrieves and normalizes a trip-updates feed.
func (c *Client) FetchTripUpdates(ctx context.Context, url string) (*TripUpdatesFeed, error) {
	b, err := c.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("trip updates: %w", err)
	}
	if b == nil {
		return &TripUpdatesFeed{Updates: []TripUpdate{}}, nil
	}
	return ParseTripUpdates(b)
}

// FetchAlerts retrieves and normalizes a service-alerts feed.
func (c *Client) FetchAlerts(ctx context.Context, url string) (*AlertsFeed, error) {
	b, err := c.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("service alerts: %w", err)
	}
	if b == nil {
		return &AlertsFeed{Alerts: []Alert{}}, nil
	}
	return ParseAlerts(b)
}
