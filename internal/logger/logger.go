// Package logger holds the process-wide zap logger.
//
// The CLI initializes it once from the root command; library packages call
// L() and get a no-op logger until then, so they stay usable from tests
// without setup.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu   sync.RWMutex
	base = zap.NewNop()
)

// Init builds the production logger. Verbose lowers the level to debug.
func Init(verbose bool) error {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return err
	}

	mu.Lock()
	base = logger
	mu.Unlock()
	return nil
}

// L returns the current logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Sync flushes buffered log entries. Errors are ignored; stderr does not
// support fsync on all platforms.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = base.Sync()
}
