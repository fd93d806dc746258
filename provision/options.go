package provision

import (
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/riverline-io/streamready-go/delays"
)

// DefaultTimeout is how long a stream is waited on before the call gives up,
// unless overridden with [WithTimeout].
const DefaultTimeout = 3 * time.Minute

// DefaultPollInterval is the cadence on which the stream state is checked
// while waiting, unless overridden with [WithPollInterval] or
// [WithPollDelay].
const DefaultPollInterval = 10 * time.Second

// Options for provisioning a stream. Use the With* functions to modify
// these.
type Options struct {
	// Timeout bounds the whole wait. The deadline is computed once when the
	// call starts and every check is compared against it.
	Timeout time.Duration

	// PollDelay decides how long to wait before the next state check.
	PollDelay delays.DelayDecider

	// CreateBackoff controls retrying of stream creation when the service
	// throttles the request. The zero value creates exactly once.
	CreateBackoff backoff.BackOff

	// RequireActive makes a stream that is being updated wait for an active
	// confirmation instead of being accepted as ready.
	RequireActive bool
}

// Option for provisioning a stream.
type Option func(*Options) error

// WithTimeout sets how long to wait for the stream to become ready. The
// default is [DefaultTimeout].
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) error {
		if timeout <= 0 {
			return NewValidationError("timeout must be positive")
		}

		o.Timeout = timeout
		return nil
	}
}

// WithPollInterval sets a fixed cadence for checking the stream state while
// waiting. The default is [DefaultPollInterval].
func WithPollInterval(interval time.Duration) Option {
	return func(o *Options) error {
		if interval <= 0 {
			return NewValidationError("poll interval must be positive")
		}

		o.PollDelay = delays.Constant(interval)
		return nil
	}
}

// WithPollDelay sets the delay decider that paces state checks while
// waiting, for cadences other than a fixed interval.
//
// Example:
//
//	provision.WithPollDelay(delays.WithMaxDelay(delays.Exponential(time.Second, 2), 30*time.Second))
func WithPollDelay(decider delays.DelayDecider) Option {
	return func(o *Options) error {
		if decider == nil {
			return NewValidationError("delay decider is required")
		}

		o.PollDelay = decider
		return nil
	}
}

// WithCreateBackoff sets the backoff used to retry stream creation when the
// service throttles the request. By default creation is attempted exactly
// once and a throttled request surfaces as an error.
func WithCreateBackoff(b backoff.BackOff) Option {
	return func(o *Options) error {
		if b == nil {
			return NewValidationError("backoff is required")
		}

		o.CreateBackoff = b
		return nil
	}
}

// RequireActive waits for an active confirmation when the stream is being
// updated, instead of accepting the update in progress as ready.
//
// The default accepts an updating stream immediately, which can hand back
// a stream whose reconfiguration is still in flight.
func RequireActive() Option {
	return func(o *Options) error {
		o.RequireActive = true
		return nil
	}
}
