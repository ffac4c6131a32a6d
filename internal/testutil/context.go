package testutil

import (
	"context"
	"testing"
	"time"
)

// ContextWithTimeout returns a context that is cancelled after duration or
// when the test ends.
func ContextWithTimeout(tb testing.TB, duration time.Duration) context.Context {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	tb.Cleanup(cancel)

	return ctx
}

// ContextWithCancel returns a context cancelled when the test ends, and
// its cancel func for cancelling earlier.
func ContextWithCancel(tb testing.TB) (context.Context, context.CancelFunc) {
	tb.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	tb.Cleanup(cancel)

	return ctx, cancel
}
