// Package timeout bounds external calls with a deadline. Every await on a
// third-party service in this codebase goes through Do so that one
// unresponsive dependency can never hang a request.
package timeout

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrDeadline is returned when the operation loses the race against its
// deadline. Match it with errors.Is.
var ErrDeadline = errors.New("deadline exceeded")

// Default budgets per call class. Longer-running stages get longer budgets.
const (
	ClientInit      = 10 * time.Second
	MetadataFetch   = 20 * time.Second
	TranscriptFetch = 10 * time.Second
	Generation      = 10 * time.Second
)

// Do races op against d. The winner's result is adopted; if the deadline
// wins, op's eventual completion is discarded, never awaited. The context
// handed to op is cancelled on expiry so ctx-aware operations can stop
// early, but cancellation is best-effort.
func Do[T any](ctx context.Context, d time.Duration, op func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type result struct {
		value T
		err   error
	}

	// Buffered so the goroutine never blocks after the deadline side wins.
	ch := make(chan result, 1)
	go func() {
		value, err := op(ctx)
		ch <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("%w after %s", ErrDeadline, d)
	case r := <-ch:
		return r.value, r.err
	}
}
