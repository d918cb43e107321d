package poll

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

const (
	// InitialInterval is the default delay between the first two probes.
	InitialInterval = 2 * time.Second
	// MaxBackoff is the default upper bound on the delay between probes.
	MaxBackoff = 30 * time.Second
	// BackoffMultiplier is the default growth factor applied after each
	// probe that sees an unchanged state.
	BackoffMultiplier = 1.5
	// JitterFactor is the fraction of the interval callers usually add as
	// random jitter. Options.Jitter does not default to it.
	JitterFactor = 0.3
)

// Options configures a poll loop.
type Options struct {
	// Interval is the starting delay. Zero or negative means InitialInterval.
	Interval time.Duration
	// MaxInterval caps the delay. Zero or negative means MaxBackoff; a value
	// below Interval is raised to Interval.
	MaxInterval time.Duration
	// Multiplier grows the delay while the state is unchanged. Values below
	// 1 mean BackoffMultiplier.
	Multiplier float64
	// Jitter adds up to Jitter*interval of random delay to each wait. Zero
	// disables jitter and negative values are treated as zero.
	Jitter float64
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = InitialInterval
	}
	if o.MaxInterval <= 0 {
		o.MaxInterval = MaxBackoff
	}
	if o.MaxInterval < o.Interval {
		o.MaxInterval = o.Interval
	}
	if o.Multiplier < 1 {
		o.Multiplier = BackoffMultiplier
	}
	if o.Jitter < 0 {
		o.Jitter = 0
	}
	return o
}

// Observation is the outcome of a single probe.
type Observation[T any] struct {
	// Value is returned by Until once Done is set.
	Value T
	// State identifies what the probe saw. A state different from the
	// previous one resets the backoff.
	State string
	// Done ends the loop successfully with Value.
	Done bool
}

// Probe inspects the remote resource once.
type Probe[T any] func(ctx context.Context) (Observation[T], error)

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks a probe error as final. Other probe errors are retried.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Backoff tracks the current polling interval.
type Backoff struct {
	opts    Options
	current time.Duration
}

// NewBackoff returns a backoff starting at the configured interval.
func NewBackoff(opts Options) *Backoff {
	opts = opts.withDefaults()
	return &Backoff{opts: opts, current: opts.Interval}
}

// Current returns the interval without jitter.
func (b *Backoff) Current() time.Duration { return b.current }

// Reset returns to the initial interval.
func (b *Backoff) Reset() { b.current = b.opts.Interval }

// Grow multiplies the interval, capped at the maximum.
func (b *Backoff) Grow() {
	next := time.Duration(float64(b.current) * b.opts.Multiplier)
	if next > b.opts.MaxInterval {
		next = b.opts.MaxInterval
	}
	b.current = next
}

// Wait returns the current interval plus random jitter.
func (b *Backoff) Wait() time.Duration {
	jitter := time.Duration(rand.Float64() * b.opts.Jitter * float64(b.current))
	return b.current + jitter
}

// Until calls probe immediately and then after each backoff interval until
// it reports Done, returns a Permanent error, or ctx ends. When ctx ends the
// returned error wraps ctx.Err() and mentions the last probe error, if any.
func Until[T any](ctx context.Context, opts Options, probe Probe[T]) (T, error) {
	var zero T
	b := NewBackoff(opts)

	var (
		lastState string
		lastErr   error
		seen      bool
	)

	for {
		obs, err := probe(ctx)
		switch {
		case err != nil:
			var perm *permanentError
			if errors.As(err, &perm) {
				return zero, perm.err
			}
			lastErr = err
		case obs.Done:
			return obs.Value, nil
		case !seen || obs.State != lastState:
			seen = true
			lastState = obs.State
			lastErr = nil
			b.Reset()
		default:
			lastErr = nil
			b.Grow()
		}

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return zero, fmt.Errorf("%w (last error: %v)", ctx.Err(), lastErr)
			}
			return zero, ctx.Err()
		case <-time.After(b.Wait()):
		}
	}
}
