// Package reconcile resolves the read-after-write gap against an eventually
// consistent record store.
//
// A freshly created record may not be visible to list queries for a short
// window. AwaitVisible polls a lookup with a bounded attempt budget and a
// fixed delay, and reports a discriminated outcome instead of treating "not
// visible yet" as a failure. Callers keep showing their last-known (possibly
// optimistic) record when the budget is exhausted; flickering the UI to an
// empty state during a transient gap is worse than briefly stale data.
package reconcile

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Outcome discriminates the result of an AwaitVisible call.
type Outcome int

const (
	// Found means the lookup returned the authoritative record.
	Found Outcome = iota
	// NotFound means the attempt budget was exhausted without a sighting.
	// This is a degraded state, not an error.
	NotFound
	// Error means a lookup failed or the context was cancelled.
	Error
)

// LookupFunc performs one visibility probe. ok reports whether the record
// was seen; err is a store failure, not a miss.
type LookupFunc[T any] func(ctx context.Context) (rec T, ok bool, err error)

// Options bound an AwaitVisible call.
type Options struct {
	// Attempts is the maximum number of lookups (default 3).
	Attempts int
	// Delay is the wait between consecutive lookups (default 350ms).
	Delay time.Duration
	// Clock is the timer source; defaults to the real clock. Tests inject
	// a fake so retry schedules run without wall-clock sleeps.
	Clock clockwork.Clock
}

func (o Options) withDefaults() Options {
	if o.Attempts <= 0 {
		o.Attempts = 3
	}
	if o.Delay <= 0 {
		o.Delay = 350 * time.Millisecond
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	return o
}

// AwaitVisible polls lookup until it reports the record, the attempt budget
// runs out, or the context is cancelled. Attempts are strictly sequential:
// the next probe never starts before the previous one returned and the delay
// elapsed. Cancelling ctx aborts a pending delay immediately, so no timer
// outlives the caller.
func AwaitVisible[T any](ctx context.Context, lookup LookupFunc[T], opts Options) (T, Outcome, error) {
	var zero T
	o := opts.withDefaults()

	for attempt := 0; attempt < o.Attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-o.Clock.After(o.Delay):
			case <-ctx.Done():
				return zero, Error, ctx.Err()
			}
		}
		rec, ok, err := lookup(ctx)
		if err != nil {
			return zero, Error, err
		}
		if ok {
			return rec, Found, nil
		}
	}
	return zero, NotFound, nil
}

// FirstOf combines lookups into one probe that tries each in order and
// reports the first sighting. A natural-key reconcile passes the
// normalized-case lookup first and the raw-case lookup second. Lookup errors
// are remembered but do not stop later lookups in the same probe; the first
// error surfaces only when nothing was found.
func FirstOf[T any](lookups ...LookupFunc[T]) LookupFunc[T] {
	return func(ctx context.Context) (T, bool, error) {
		var zero T
		var firstErr error
		for _, l := range lookups {
			rec, ok, err := l(ctx)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			if ok {
				return rec, true, nil
			}
		}
		return zero, false, firstErr
	}
}
