package tfl

import "time"

// Prediction is one entry of the StopPoint Arrivals response.
// Only the fields the board uses are decoded.
type Prediction struct {
	ID              string    `json:"id"`
	VehicleID       string    `json:"vehicleId"`
	NaptanID        string    `json:"naptanId"`
	StationName     string    `json:"stationName"`
	LineID          string    `json:"lineId"`
	LineName        string    `json:"lineName"`
	PlatformName    string    `json:"platformName"`
	DestinationName string    `json:"destinationName"`
	Towards         string    `json:"towards"`
	TimeToStation   int       `json:"timeToStation"`
	ExpectedArrival time.Time `json:"expectedArrival"`
	ModeName        string    `json:"modeName"`
}
