// Package clock provides context-aware waiting helpers.
package clock

import (
	"context"
	"time"
)

// SleepWithContext waits for d or returns ctx.Err() once ctx is done.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	return Wait(ctx, d, nil)
}

// Wait blocks until d elapses, signal fires, or ctx is done. A nil signal
// never fires. Only context termination yields an error.
func Wait(ctx context.Context, d time.Duration, signal <-chan struct{}) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-signal:
		return nil
	case <-timer.C:
		return nil
	}
}
