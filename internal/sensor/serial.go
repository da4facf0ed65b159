package sensor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/albenik/go-serial/v2"
	"go.uber.org/zap"
)

// maxSample is the largest value a 16-bit ADC reading can take
const maxSample = 65535

// Serial reads potentiometer samples streamed by a microcontroller over a
// serial port, one decimal reading per line.
type Serial struct {
	port   *serial.Port
	lines  *lineReader
	logger *zap.SugaredLogger
}

// OpenSerial opens the serial device at path
func OpenSerial(path string, baud int, logger *zap.SugaredLogger) (*Serial, error) {
	port, err := serial.Open(path,
		serial.WithBaudrate(baud),
		serial.WithReadTimeout(1000),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", path, err)
	}

	logger.Infof("Sensor: opened %s at %d baud", path, baud)
	return &Serial{
		port:   port,
		lines:  newLineReader(port, logger),
		logger: logger,
	}, nil
}

// Read returns the most recent complete reading from the device
func (s *Serial) Read(ctx context.Context) (uint16, error) {
	// Drop buffered readings so the result reflects the knob's current position.
	// The first line after a reset may be partial and is discarded.
	if err := s.port.ResetInputBuffer(); err != nil {
		return 0, fmt.Errorf("failed to reset input buffer: %w", err)
	}
	s.lines.reset(s.port)
	if err := s.lines.skipLine(); err != nil {
		return 0, err
	}

	return s.lines.readSample(ctx)
}

// Close closes the serial port
func (s *Serial) Close() error {
	return s.port.Close()
}

type lineReader struct {
	r      *bufio.Reader
	logger *zap.SugaredLogger
}

func newLineReader(r io.Reader, logger *zap.SugaredLogger) *lineReader {
	return &lineReader{r: bufio.NewReader(r), logger: logger}
}

func (l *lineReader) reset(r io.Reader) {
	l.r.Reset(r)
}

func (l *lineReader) skipLine() error {
	if _, err := l.r.ReadString('\n'); err != nil {
		return fmt.Errorf("failed to read from sensor: %w", err)
	}
	return nil
}

// readSample returns the first line that parses as a sample
func (l *lineReader) readSample(ctx context.Context) (uint16, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		line, err := l.r.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			sample, perr := ParseSample(line)
			if perr == nil {
				return sample, nil
			}
			l.logger.Debugf("Sensor: skipping line %q: %v", line, perr)
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read from sensor: %w", err)
		}
	}
}

// ParseSample parses one decimal reading. Values above 65535 are clamped.
func ParseSample(line string) (uint16, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return 0, err
	}
	if value > maxSample {
		value = maxSample
	}
	return uint16(value), nil
}
