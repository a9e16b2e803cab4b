// Package ready waits, for a bounded time, for a host precondition to hold.
package ready

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned when the precondition never held within the window.
var ErrTimeout = errors.New("ready: timed out waiting for host")

// Defaults: check once a second, give up after thirty seconds.
const (
	DefaultInterval = time.Second
	DefaultTimeout  = 30 * time.Second
)

// Poll calls check immediately and then every interval until it returns
// true, the timeout elapses or ctx is done. A non-positive interval or
// timeout falls back to the defaults.
func Poll(ctx context.Context, interval, timeout time.Duration, check func() bool) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if check() {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return ErrTimeout
		case <-ticker.C:
			if check() {
				return nil
			}
		}
	}
}
