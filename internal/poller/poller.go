package poller

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mini-rodalies-3d/stopboard/internal/arrivals"
	"github.com/mini-rodalies-3d/stopboard/internal/display"
)

// Sensor reports the current position of the selection knob
type Sensor interface {
	Read(ctx context.Context) (uint16, error)
}

// Fetcher retrieves the current arrivals for a station/line pair
type Fetcher interface {
	FetchArrivals(ctx context.Context, pair arrivals.StationLinePair) ([]arrivals.Arrival, error)
}

// Outcome is the result of one iteration
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeFetchFailed
	OutcomeNoData
	OutcomeNoMatchingLine
	OutcomeSensorFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeFetchFailed:
		return "fetch_failed"
	case OutcomeNoData:
		return "no_data"
	case OutcomeNoMatchingLine:
		return "no_matching_line"
	case OutcomeSensorFailed:
		return "sensor_failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

func outcomeFor(status arrivals.Status) Outcome {
	switch status {
	case arrivals.StatusNoData:
		return OutcomeNoData
	case arrivals.StatusNoMatchingLine:
		return OutcomeNoMatchingLine
	default:
		return OutcomeOK
	}
}

// Iteration describes what one poll did
type Iteration struct {
	ID      string
	Sample  uint16
	Pair    arrivals.StationLinePair
	Outcome Outcome
	Ranked  []arrivals.Arrival
	Err     error
}

// Poller runs the read, select, fetch, rank, print cycle
type Poller struct {
	pairs    arrivals.Pairs
	interval time.Duration
	sensor   Sensor
	fetcher  Fetcher
	printer  *display.Printer
	logger   *zap.SugaredLogger
}

// New creates a poller. pairs must not be empty.
func New(pairs arrivals.Pairs, interval time.Duration, sensor Sensor, fetcher Fetcher, printer *display.Printer, logger *zap.SugaredLogger) *Poller {
	return &Poller{
		pairs:    pairs,
		interval: interval,
		sensor:   sensor,
		fetcher:  fetcher,
		printer:  printer,
		logger:   logger,
	}
}

// Run polls once immediately and then on every tick until ctx is done
func (p *Poller) Run(ctx context.Context) {
	p.PollOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.PollOnce(ctx)
		case <-ctx.Done():
			p.logger.Info("Polling loop stopped")
			return
		}
	}
}

// PollOnce runs a single iteration. Failures are logged and reported in the
// returned Iteration; they never stop the loop.
func (p *Poller) PollOnce(ctx context.Context) Iteration {
	it := Iteration{ID: uuid.New().String()}
	log := p.logger.With("iteration", it.ID)

	sample, err := p.sensor.Read(ctx)
	if err != nil {
		log.Warnw("Failed to read sensor", "error", err)
		it.Outcome = OutcomeSensorFailed
		it.Err = err
		return it
	}
	it.Sample = sample
	it.Pair = p.pairs.Select(sample)

	if err := p.printer.Selection(it.Pair); err != nil {
		log.Warnw("Failed to print selection", "error", err)
	}

	fetched, err := p.fetcher.FetchArrivals(ctx, it.Pair)
	if err != nil {
		// Degrade to an empty result, the board shows "no data"
		log.Warnw("Failed to retrieve data", "station", it.Pair.StationID, "line", it.Pair.LineID, "error", err)
		it.Outcome = OutcomeFetchFailed
		it.Err = err
		fetched = nil
	}

	ranked, status := arrivals.Rank(fetched, it.Pair.LineID)
	if it.Outcome != OutcomeFetchFailed {
		it.Outcome = outcomeFor(status)
	}
	it.Ranked = ranked

	if err := p.printer.Arrivals(ranked, status, it.Pair.LineID); err != nil {
		log.Warnw("Failed to print arrivals", "error", err)
	}

	log.Debugw("Poll complete",
		"sample", sample,
		"pair", it.Pair.String(),
		"fetched", len(fetched),
		"shown", len(ranked),
		"outcome", it.Outcome.String(),
	)
	return it
}
