package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/mini-rodalies-3d/stopboard/internal/config"
	"github.com/mini-rodalies-3d/stopboard/internal/display"
	"github.com/mini-rodalies-3d/stopboard/internal/logging"
	"github.com/mini-rodalies-3d/stopboard/internal/network"
	"github.com/mini-rodalies-3d/stopboard/internal/poller"
	"github.com/mini-rodalies-3d/stopboard/internal/realtime/gtfsrt"
	"github.com/mini-rodalies-3d/stopboard/internal/realtime/tfl"
	"github.com/mini-rodalies-3d/stopboard/internal/sensor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Get().Fatalf("Failed to load config: %v", err)
	}

	logging.Init(cfg.LogLevel)
	logger := logging.Get()
	defer logging.Sync()

	logger.Infof("Config loaded: provider=%s pairs=%d poll_interval=%v", cfg.Provider, len(cfg.Pairs), cfg.PollInterval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info("Shutting down...")
		cancel()
	}()

	// ═══════════════════════════════════════════════════════
	// PHASE 1: Network
	// ═══════════════════════════════════════════════════════
	connector, err := network.NewConnector(apiURL(cfg), cfg.ConnectRetryInterval, logger)
	if err != nil {
		logger.Fatalf("Failed to set up connectivity check: %v", err)
	}
	if _, err := connector.Connect(ctx); err != nil {
		logger.Infof("Stopped before connecting: %v", err)
		return
	}

	// ═══════════════════════════════════════════════════════
	// PHASE 2: Sensor and retrieval
	// ═══════════════════════════════════════════════════════
	knob, closeSensor := openSensor(cfg, logger)
	defer closeSensor()

	var fetcher poller.Fetcher
	switch cfg.Provider {
	case config.ProviderGTFSRT:
		fetcher = gtfsrt.NewClient(cfg.GTFSTripUpdatesURL, cfg.HTTPTimeout)
	default:
		if cfg.TfLAppID == "" || cfg.TfLAppKey == "" {
			logger.Warn("TfL API credentials not configured, requests will be rate limited")
		}
		fetcher = tfl.NewClient(cfg.TfLAPIURL, cfg.TfLAppID, cfg.TfLAppKey, cfg.HTTPTimeout)
	}

	// ═══════════════════════════════════════════════════════
	// PHASE 3: Polling loop
	// ═══════════════════════════════════════════════════════
	p := poller.New(cfg.Pairs, cfg.PollInterval, knob, fetcher, display.NewPrinter(os.Stdout), logger)

	logger.Infof("Board running (poll every %v)", cfg.PollInterval)
	p.Run(ctx)
	logger.Info("Goodbye!")
}

func apiURL(cfg *config.Config) string {
	if cfg.Provider == config.ProviderGTFSRT {
		return cfg.GTFSTripUpdatesURL
	}
	return cfg.TfLAPIURL
}

// openSensor opens the serial knob, falling back to the fixed SENSOR_VALUE
// when no device is configured or it cannot be opened
func openSensor(cfg *config.Config, logger *zap.SugaredLogger) (poller.Sensor, func()) {
	fixed := sensor.Fixed{Value: cfg.SensorValue}
	if cfg.SerialPort == "" {
		logger.Infof("No SERIAL_PORT configured, using fixed sensor value %d", cfg.SensorValue)
		return fixed, func() {}
	}

	serialSensor, err := sensor.OpenSerial(cfg.SerialPort, cfg.SerialBaud, logger)
	if err != nil {
		logger.Warnf("Warning: %v, using fixed sensor value %d", err, cfg.SensorValue)
		return fixed, func() {}
	}

	return serialSensor, func() {
		if err := serialSensor.Close(); err != nil {
			logger.Warnf("Failed to close sensor: %v", err)
		}
	}
}
