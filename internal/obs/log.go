package obs

import (
	"sync"

	"go.uber.org/zap"
)

var (
	loggerMu sync.Mutex
	logger   *zap.Logger
)

// Logger returns the shared structured logger used across the client.
func Logger() *zap.Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		l, err := zap.NewProduction()
		if err != nil {
			l = zap.NewNop()
		}
		logger = l
	}
	return logger
}

// SetDebug switches the shared logger to development encoding with debug
// level enabled. Call once at startup.
func SetDebug() {
	l, err := zap.NewDevelopment()
	if err != nil {
		return
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

// Sync flushes buffered log entries. Safe to call on shutdown.
func Sync() {
	loggerMu.Lock()
	l := logger
	loggerMu.Unlock()
	if l != nil {
		_ = l.Sync()
	}
}
