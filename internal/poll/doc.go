// Package poll repeats a probe with adaptive backoff until it reports
// completion or the context ends.
//
// The interval starts at [InitialInterval] and grows by
// [BackoffMultiplier] up to [MaxBackoff] while the observed state stays the
// same. A change in state resets it. Each wait adds up to [JitterFactor] of
// the interval as random jitter so that many waiters do not poll in step.
package poll
