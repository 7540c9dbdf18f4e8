package app

import (
	"context"
	"log/slog"
	"time"
)

const maxBackoff = 5 * time.Minute

// RefreshFunc performs one refresh and reports whether it failed.
type RefreshFunc func(ctx context.Context) error

// StartPoller launches a goroutine that calls refresh every interval until
// ctx is cancelled. Consecutive failures back off exponentially. A
// non-positive interval disables polling. It returns immediately.
func StartPoller(ctx context.Context, interval time.Duration, refresh RefreshFunc, logger *slog.Logger) {
	if interval <= 0 {
		return
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			if err := refresh(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				failures++
				logger.Warn("auto-refresh failed", "error", err, "failures", failures)
			} else {
				failures = 0
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// calculateBackoff doubles the interval per consecutive failure, capped at
// maxBackoff but never below the base interval.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	limit := max(maxBackoff, base)
	d := base
	for range failures {
		d *= 2
		if d >= limit {
			return limit
		}
	}
	return d
}
