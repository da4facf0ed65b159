package arrivals

import "time"

// Arrival is one predicted vehicle arrival at a stop
type Arrival struct {
	LineName        string
	StationName     string
	DestinationName string
	TimeToStation   int // seconds until the vehicle reaches the stop

	// Optional, filled in when the provider reports them
	VehicleID       string
	PlatformName    string
	ExpectedArrival time.Time
}

// Minutes returns the whole minutes until arrival (floor division)
func (a Arrival) Minutes() int {
	return a.TimeToStation / 60
}

// StationLinePair is a stop and line combination the operator can select
type StationLinePair struct {
	StationID string
	LineID    string
}

func (p StationLinePair) String() string {
	return p.StationID + ":" + p.LineID
}

// Pairs is the ordered list of selectable station/line pairs.
// It is never empty once configuration has been loaded.
type Pairs []StationLinePair

// Select returns the pair chosen by a sensor sample
func (ps Pairs) Select(sample uint16) StationLinePair {
	return ps[Select(sample, len(ps))]
}
