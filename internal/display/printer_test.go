package display

import (
	"bytes"
	"testing"

	"github.com/mini-rodalies-3d/stopboard/internal/arrivals"
)

func TestFormatArrival(t *testing.T) {
	a := arrivals.Arrival{StationName: "Kings Cross", DestinationName: "Waterloo", TimeToStation: 421}

	expected := "Station: Kings Cross, Destination: Waterloo, Time: 7 min"
	if got := FormatArrival(a); got != expected {
		t.Errorf("FormatArrival() = %q, expected %q", got, expected)
	}
}

func TestPrinter(t *testing.T) {
	tests := []struct {
		name     string
		ranked   []arrivals.Arrival
		status   arrivals.Status
		expected string
	}{
		{
			name: "two arrivals",
			ranked: []arrivals.Arrival{
				{StationName: "Kings Cross", DestinationName: "Hackney Wick", TimeToStation: 95},
				{StationName: "Kings Cross", DestinationName: "Waterloo", TimeToStation: 421},
			},
			status: arrivals.StatusOK,
			expected: "Station: Kings Cross, Destination: Hackney Wick, Time: 1 min\n" +
				"Station: Kings Cross, Destination: Waterloo, Time: 7 min\n",
		},
		{
			name:     "no data",
			status:   arrivals.StatusNoData,
			expected: "No data available\n",
		},
		{
			name:     "no matching line",
			status:   arrivals.StatusNoMatchingLine,
			expected: "No arrivals found for line 26\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewPrinter(&buf).Arrivals(tc.ranked, tc.status, "26"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if buf.String() != tc.expected {
				t.Errorf("got %q, expected %q", buf.String(), tc.expected)
			}
		})
	}
}

func TestPrinterSelection(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf).Selection(arrivals.StationLinePair{StationID: "490012105HA", LineID: "15"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "Selected Station: 490012105HA Line: 15\n"
	if buf.String() != expected {
		t.Errorf("got %q, expected %q", buf.String(), expected)
	}
}
