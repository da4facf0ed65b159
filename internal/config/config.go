package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mini-rodalies-3d/stopboard/internal/arrivals"
)

const (
	ProviderTfL    = "tfl"
	ProviderGTFSRT = "gtfsrt"
)

// DefaultPairs is the compiled-in selection list used when STATION_LINE_PAIRS is unset
const DefaultPairs = "490012105HA:26,490012105HA:15,490012105HA:76"

// ErrNoPairs is returned when no station/line pairs are configured
var ErrNoPairs = errors.New("no station/line pairs configured")

// Config holds all configuration for the arrivals board
type Config struct {
	// Selection
	Pairs arrivals.Pairs

	// Polling
	PollInterval         time.Duration
	HTTPTimeout          time.Duration
	ConnectRetryInterval time.Duration

	// Retrieval
	Provider           string
	TfLAPIURL          string
	TfLAppID           string
	TfLAppKey          string
	GTFSTripUpdatesURL string

	// Sensor
	SerialPort  string
	SerialBaud  int
	SensorValue uint16

	LogLevel string
}

// Load reads .env files and then configuration from environment variables
// with sensible defaults
func Load() (*Config, error) {
	// Base .env first, then .env.local which overrides it for local development
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	return FromEnv()
}

// FromEnv builds the configuration from the current environment only
func FromEnv() (*Config, error) {
	cfg := &Config{
		// Polling
		PollInterval:         time.Duration(getEnvInt("POLL_INTERVAL", 10)) * time.Second,
		HTTPTimeout:          time.Duration(getEnvInt("HTTP_TIMEOUT", 15)) * time.Second,
		ConnectRetryInterval: time.Duration(getEnvInt("CONNECT_RETRY_INTERVAL", 1)) * time.Second,

		// Retrieval
		Provider:           strings.ToLower(getEnv("PROVIDER", ProviderTfL)),
		TfLAPIURL:          strings.TrimRight(getEnv("TFL_API_URL", "https://api.tfl.gov.uk"), "/"),
		TfLAppID:           getEnv("TFL_APP_ID", ""),
		TfLAppKey:          getEnv("TFL_APP_KEY", ""),
		GTFSTripUpdatesURL: getEnv("GTFS_TRIP_UPDATES_URL", ""),

		// Sensor
		SerialPort: getEnv("SERIAL_PORT", ""),
		SerialBaud: getEnvInt("SERIAL_BAUD", 115200),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	pairs, err := ParsePairs(getEnv("STATION_LINE_PAIRS", DefaultPairs))
	if err != nil {
		return nil, err
	}
	cfg.Pairs = pairs

	sensorValue := getEnvInt("SENSOR_VALUE", 0)
	if sensorValue < 0 || sensorValue >= arrivals.SampleRange {
		return nil, fmt.Errorf("SENSOR_VALUE %d out of range 0..%d", sensorValue, arrivals.SampleRange-1)
	}
	cfg.SensorValue = uint16(sensorValue)

	switch cfg.Provider {
	case ProviderTfL:
	case ProviderGTFSRT:
		if cfg.GTFSTripUpdatesURL == "" {
			return nil, errors.New("GTFS_TRIP_UPDATES_URL is required for the gtfsrt provider")
		}
	default:
		return nil, fmt.Errorf("unknown PROVIDER %q", cfg.Provider)
	}

	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("POLL_INTERVAL must be positive, got %v", cfg.PollInterval)
	}

	return cfg, nil
}

// ParsePairs parses a comma separated list of station:line entries,
// e.g. "490012105HA:26,490012105HA:15". Order is preserved.
func ParsePairs(raw string) (arrivals.Pairs, error) {
	var pairs arrivals.Pairs
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		stationID, lineID, ok := strings.Cut(entry, ":")
		stationID = strings.TrimSpace(stationID)
		lineID = strings.TrimSpace(lineID)
		if !ok || stationID == "" || lineID == "" {
			return nil, fmt.Errorf("invalid station/line pair %q (expected station:line)", entry)
		}

		pairs = append(pairs, arrivals.StationLinePair{StationID: stationID, LineID: lineID})
	}

	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}
	return pairs, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
