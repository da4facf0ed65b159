package display

import (
	"fmt"
	"io"

	"github.com/mini-rodalies-3d/stopboard/internal/arrivals"
)

// Printer writes the board as plain text lines
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Selection reports which pair the sensor picked
func (p *Printer) Selection(pair arrivals.StationLinePair) error {
	_, err := fmt.Fprintf(p.w, "Selected Station: %s Line: %s\n", pair.StationID, pair.LineID)
	return err
}

// Arrivals prints the ranked arrivals, or the reason there are none
func (p *Printer) Arrivals(ranked []arrivals.Arrival, status arrivals.Status, lineID string) error {
	if status != arrivals.StatusOK {
		_, err := fmt.Fprintln(p.w, status.Message(lineID))
		return err
	}

	for _, a := range ranked {
		if _, err := fmt.Fprintln(p.w, FormatArrival(a)); err != nil {
			return err
		}
	}
	return nil
}

// FormatArrival renders one arrival, e.g.
// "Station: Kings Cross, Destination: Waterloo, Time: 7 min"
func FormatArrival(a arrivals.Arrival) string {
	return fmt.Sprintf("Station: %s, Destination: %s, Time: %d min", a.StationName, a.DestinationName, a.Minutes())
}
