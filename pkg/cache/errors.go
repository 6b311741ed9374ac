package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when a remote cache backend cannot be reached.
var ErrUnavailable = errors.New("cache unavailable")

// retryDelay is the pause after the first failed attempt; it doubles after
// each further failure. Tests shorten it.
var retryDelay = 200 * time.Millisecond

// retry calls fn until it succeeds, attempts are used up or ctx is done, and
// returns the last error.
func retry(ctx context.Context, attempts int, fn func(context.Context) error) error {
	delay := retryDelay
	var err error
	for i := range attempts {
		if err = fn(ctx); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
	return err
}
