package tfl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mini-rodalies-3d/stopboard/internal/arrivals"
)

// Client fetches arrival predictions from the TfL unified API
type Client struct {
	baseURL string
	appID   string
	appKey  string
	client  *http.Client
}

// NewClient creates a TfL client. baseURL is the API host, e.g. https://api.tfl.gov.uk
func NewClient(baseURL, appID, appKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		appID:   appID,
		appKey:  appKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchArrivals returns the predictions for the pair's stop, filtered
// server-side by line name. Ranking is left to the caller.
func (c *Client) FetchArrivals(ctx context.Context, pair arrivals.StationLinePair) ([]arrivals.Arrival, error) {
	predictions, err := c.fetchPredictions(ctx, pair)
	if err != nil {
		return nil, err
	}

	result := make([]arrivals.Arrival, 0, len(predictions))
	for _, p := range predictions {
		result = append(result, arrivals.Arrival{
			LineName:        p.LineName,
			StationName:     p.StationName,
			DestinationName: p.DestinationName,
			TimeToStation:   max(p.TimeToStation, 0),
			VehicleID:       p.VehicleID,
			PlatformName:    p.PlatformName,
			ExpectedArrival: p.ExpectedArrival,
		})
	}

	return result, nil
}

func (c *Client) fetchPredictions(ctx context.Context, pair arrivals.StationLinePair) ([]Prediction, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.arrivalsURL(pair), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch arrivals: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("API returned %d: %s", resp.StatusCode, string(body))
	}

	// API returns an array directly
	var predictions []Prediction
	if err := json.NewDecoder(resp.Body).Decode(&predictions); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return predictions, nil
}

func (c *Client) arrivalsURL(pair arrivals.StationLinePair) string {
	q := url.Values{}
	q.Set("lineName", pair.LineID)
	if c.appID != "" {
		q.Set("app_id", c.appID)
	}
	if c.appKey != "" {
		q.Set("app_key", c.appKey)
	}
	return fmt.Sprintf("%s/StopPoint/%s/Arrivals?%s", c.baseURL, url.PathEscape(pair.StationID), q.Encode())
}
