// Package race provides a bounded concurrent race across redundant sources:
// every source is attempted at once, each attempt capped by a per-attempt
// timeout, and the first well-formed result wins. Remaining attempts are
// cancelled and never waited on. Transport independent.
package race

import (
	"context"
	"errors"
	"time"
)

// ErrAllSourcesFailed indicates every raced source failed or timed out
var ErrAllSourcesFailed = errors.New("all sources failed")

// ErrNoSources indicates the race was started with an empty source list
var ErrNoSources = errors.New("no sources to race")

// Source is one attemptable origin for a value of type T
type Source[T any] struct {
	Name  string
	Fetch func(ctx context.Context) (T, error)
}

type attempt[T any] struct {
	name  string
	value T
	err   error
}

// First races all sources and returns the first successful result along with
// the name of the source that produced it. When every source fails, the
// returned error wraps ErrAllSourcesFailed together with each attempt error.
func First[T any](ctx context.Context, sources []Source[T], perAttemptTimeout time.Duration) (T, string, error) {
	var zero T

	if len(sources) == 0 {
		return zero, "", ErrNoSources
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered so losing goroutines never block after the winner returns.
	results := make(chan attempt[T], len(sources))

	for _, src := range sources {
		go func(src Source[T]) {
			attemptCtx := raceCtx
			if perAttemptTimeout > 0 {
				var attemptCancel context.CancelFunc
				attemptCtx, attemptCancel = context.WithTimeout(raceCtx, perAttemptTimeout)
				defer attemptCancel()
			}

			value, err := src.Fetch(attemptCtx)
			results <- attempt[T]{name: src.Name, value: value, err: err}
		}(src)
	}

	errs := make([]error, 0, len(sources))
	for range sources {
		if err := ctx.Err(); err != nil {
			return zero, "", err
		}
		select {
		case res := <-results:
			if res.err == nil {
				return res.value, res.name, nil
			}
			errs = append(errs, errors.New(res.name+": "+res.err.Error()))
		case <-ctx.Done():
			return zero, "", ctx.Err()
		}
	}

	return zero, "", errors.Join(append([]error{ErrAllSourcesFailed}, errs...)...)
}
