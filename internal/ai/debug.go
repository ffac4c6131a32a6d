package ai

import "sync/atomic"

// debugLoggingEnabled guards decision tracing. Tracing records the visited
// path, so it is kept off the hot path unless asked for.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables decision tracing.
// Called from main after the log level is known.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if decision tracing is enabled.
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("expensive operation", "data", computeExpensiveData())
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
