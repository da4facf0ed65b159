package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sharedLogger *zap.SugaredLogger

// Init builds the shared logger. Unknown levels fall back to info.
// Logs go to stderr so that stdout only carries the arrivals display.
func Init(level string) {
	if sharedLogger != nil {
		return
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		MessageKey:     "M",
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.0000"),
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	lvl := zapcore.InfoLevel
	if level != "" {
		if parsedLevel, err := zapcore.ParseLevel(level); err == nil {
			lvl = parsedLevel
		}
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		lvl,
	)

	sharedLogger = zap.New(core).Sugar()
}

func Get() *zap.SugaredLogger {
	if sharedLogger == nil {
		Init(os.Getenv("LOG_LEVEL"))
	}
	return sharedLogger
}

func Sync() {
	if sharedLogger != nil {
		_ = sharedLogger.Sync()
	}
}
