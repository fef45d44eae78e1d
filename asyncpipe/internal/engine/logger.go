package engine

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the engine's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger installs l as the engine's logger. Callers that want to see
// per-stage debug output (the statement count of the tree after each of
// the five stages) call this before invoking the pipeline; the default is a
// no-op logger, so the pass is silent unless asked otherwise.
func SetLogger(l *zap.Logger) {
	loggerOnce.Do(func() {})
	logger = l
}
