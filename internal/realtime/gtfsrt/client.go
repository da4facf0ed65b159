package gtfsrt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"google.golang.org/protobuf/proto"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"github.com/mini-rodalies-3d/stopboard/internal/arrivals"
)

// Client builds arrivals for a stop from a GTFS-Realtime TripUpdates feed
type Client struct {
	feedURL string
	client  *http.Client
	now     func() time.Time
}

// NewClient creates a GTFS-RT client for the given TripUpdates feed URL
func NewClient(feedURL string, timeout time.Duration) *Client {
	return &Client{
		feedURL: feedURL,
		client: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}
}

// FetchArrivals returns one arrival per trip calling at the pair's stop.
// LineName is the trip's route_id. Trips on every route are returned so the
// ranker can tell "no data" apart from "no arrivals for this line".
func (c *Client) FetchArrivals(ctx context.Context, pair arrivals.StationLinePair) ([]arrivals.Arrival, error) {
	feed, err := c.fetchFeed(ctx)
	if err != nil {
		return nil, err
	}
	return c.arrivalsAtStop(feed, pair.StationID), nil
}

func (c *Client) arrivalsAtStop(feed *gtfs.FeedMessage, stopID string) []arrivals.Arrival {
	// Predictions are relative to when the feed was generated, when known
	ref := c.now()
	if ts := feed.GetHeader().GetTimestamp(); ts > 0 {
		ref = time.Unix(int64(ts), 0)
	}

	var result []arrivals.Arrival
	for _, entity := range feed.Entity {
		tripUpdate := entity.GetTripUpdate()
		if tripUpdate == nil {
			continue
		}

		trip := tripUpdate.GetTrip()
		if trip.GetScheduleRelationship() == gtfs.TripDescriptor_CANCELED {
			continue
		}

		for _, stu := range tripUpdate.StopTimeUpdate {
			if stu.GetStopId() != stopID {
				continue
			}
			if stu.GetScheduleRelationship() == gtfs.TripUpdate_StopTimeUpdate_SKIPPED {
				continue
			}

			// Arrival time, falling back to departure for first stops
			eventTime := stu.GetArrival().GetTime()
			if eventTime == 0 {
				eventTime = stu.GetDeparture().GetTime()
			}
			if eventTime == 0 {
				continue
			}

			expected := time.Unix(eventTime, 0).UTC()
			secs := int(expected.Sub(ref) / time.Second)
			if secs < 0 {
				// Already gone
				continue
			}

			destination := tripUpdate.GetVehicle().GetLabel()
			if destination == "" {
				destination = trip.GetTripId()
			}

			result = append(result, arrivals.Arrival{
				LineName:        trip.GetRouteId(),
				StationName:     stopID,
				DestinationName: destination,
				TimeToStation:   secs,
				VehicleID:       tripUpdate.GetVehicle().GetId(),
				ExpectedArrival: expected,
			})
		}
	}

	return result
}

// fetchFeed fetches and decodes the TripUpdates feed
func (c *Client) fetchFeed(ctx context.Context) (*gtfs.FeedMessage, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	feed := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(body, feed); err != nil {
		return nil, fmt.Errorf("failed to parse protobuf: %w", err)
	}

	return feed, nil
}
