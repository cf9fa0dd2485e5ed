// Package log holds the process-wide zap logger used by the commands.
package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger. It discards everything until Init is
// called.
var Logger = zap.NewNop()

var (
	String     = zap.String
	Int        = zap.Int
	Float64    = zap.Float64
	ErrorField = zap.Error
)

// New builds a logger for a zap level name and a format ("text" or "json").
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	var cfg zap.Config
	switch format {
	case "json":
		cfg = zap.NewProductionConfig()
	case "text", "":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// Init replaces Logger with New(level, format).
func Init(level, format string) error {
	l, err := New(level, format)
	if err != nil {
		return err
	}
	Logger = l
	return nil
}

func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

// Sync flushes Logger. Errors from syncing stderr are ignored.
func Sync() { _ = Logger.Sync() }
