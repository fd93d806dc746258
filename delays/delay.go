package delays

import (
	"math"
	"math/rand"
	"time"
)

// Stop indicates that no further checks should be made.
const Stop time.Duration = -1

// DelayDecider returns how long to wait before the next check of an
// external state, based on the current attempt and when waiting began.
//
// - attempt is the current attempt, starting at 1.
// - startTime is the time when the wait started.
//
// May return [Stop] to indicate that waiting should end early, regardless
// of any deadline in effect.
type DelayDecider func(attempt uint, startTime time.Time) time.Duration

// Constant returns a delay decider that polls on a fixed cadence.
func Constant(d time.Duration) DelayDecider {
	return func(uint, time.Time) time.Duration {
		return d
	}
}

// Exponential returns a delay decider whose delay grows with each attempt,
// calculated as initial * multiplier^(attempt-1). Useful to back off against
// a service that is slow to converge.
//
// Example:
//
//	decider := Exponential(1*time.Second, 2)
//	decider(1, ...) // 1s
//	decider(2, ...) // 2s
//	decider(3, ...) // 4s
func Exponential(initial time.Duration, multiplier float64) DelayDecider {
	return func(attempt uint, _ time.Time) time.Duration {
		return time.Duration(float64(initial) * math.Pow(multiplier, float64(attempt-1)))
	}
}

// WithJitterFactor takes an existing delay decider and adds jitter scaled to
// the delay, spreading out checks from callers that started at the same
// time.
//
// Scale should be between 0 and 1. A scale of 0 returns the delay without
// any jitter. A scale of 1 returns a random value between 0 and 2*delay.
//
// Example:
//
//	WithJitterFactor(Constant(10*time.Second), 0.1)
func WithJitterFactor(decider DelayDecider, jitterScale float64) DelayDecider {
	return func(attempt uint, startTime time.Time) time.Duration {
		delay := decider(attempt, startTime)
		jitter := time.Duration(jitterScale * float64(delay))

		minInterval := float64(delay - jitter)
		maxInterval := float64(delay + jitter)
		return time.Duration(minInterval + rand.Float64()*(maxInterval-minInterval+1))
	}
}

// WithMaxDelay caps the delay returned by an existing delay decider. This
// does not limit the number of checks, only the time between them.
//
// Example:
//
//	decider := WithMaxDelay(Exponential(1*time.Second, 2), 5*time.Second)
//	decider(1, ...) // 1s
//	decider(2, ...) // 2s
//	decider(3, ...) // 4s
//	decider(4, ...) // 5s (instead of 8s)
func WithMaxDelay(decider DelayDecider, maxDelay time.Duration) DelayDecider {
	return func(attempt uint, startTime time.Time) time.Duration {
		delay := decider(attempt, startTime)
		if maxDelay == 0 {
			return delay
		}

		if delay > maxDelay {
			return maxDelay
		}

		return delay
	}
}

// StopAfterMaxAttempts creates a [DelayDecider] that gives up waiting after
// a certain number of checks.
//
// Example:
//
//	decider := StopAfterMaxAttempts(Constant(10*time.Second), 3)
//	decider(1, ...) // 10s
//	decider(2, ...) // 10s
//	decider(3, ...) // delays.Stop
func StopAfterMaxAttempts(decider DelayDecider, maxAttempts uint) DelayDecider {
	return func(attempt uint, startTime time.Time) time.Duration {
		if maxAttempts == 0 {
			return decider(attempt, startTime)
		}

		if attempt >= maxAttempts {
			return Stop
		}

		return decider(attempt, startTime)
	}
}
