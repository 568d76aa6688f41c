// Package logger wraps zap construction with runtime level configuration.
package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger holds the shared zap instance for the process.
type Logger struct {
	// Log is the configured zap logger; valid after Init.
	Log *zap.Logger
}

// New returns a Logger backed by a no-op zap instance until Init is called.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds a production logger at the given level ("Debug", "Info", ...).
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	log, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	l.Log = log
	return nil
}
