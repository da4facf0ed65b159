package arrivals

import (
	"fmt"
	"sort"
)

// MaxRanked is the most arrivals Rank will return
const MaxRanked = 2

// Status explains the result of Rank
type Status int

const (
	StatusOK Status = iota
	StatusNoData
	StatusNoMatchingLine
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoData:
		return "no_data"
	case StatusNoMatchingLine:
		return "no_matching_line"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Message returns the operator-facing text for an empty result
func (s Status) Message(lineID string) string {
	switch s {
	case StatusNoData:
		return "No data available"
	case StatusNoMatchingLine:
		return fmt.Sprintf("No arrivals found for line %s", lineID)
	default:
		return ""
	}
}

// Rank keeps the arrivals for lineID and returns the soonest MaxRanked of
// them, ordered by TimeToStation. Ties keep their input order.
// The input slice is not modified.
func Rank(arrivals []Arrival, lineID string) ([]Arrival, Status) {
	if len(arrivals) == 0 {
		return nil, StatusNoData
	}

	filtered := make([]Arrival, 0, len(arrivals))
	for _, a := range arrivals {
		if a.LineName == lineID {
			filtered = append(filtered, a)
		}
	}
	if len(filtered) == 0 {
		return nil, StatusNoMatchingLine
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].TimeToStation < filtered[j].TimeToStation
	})

	if len(filtered) > MaxRanked {
		filtered = filtered[:MaxRanked]
	}
	return filtered, StatusOK
}
