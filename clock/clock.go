package clock

import (
	"context"
	"time"
)

// Clock tells the current time and waits for durations to pass. Deadlines
// are computed and compared through a Clock so that tests can control time
// instead of sleeping for real.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Sleep waits for the given duration to pass. It returns early with the
	// context's error if the context is canceled, in which case the wait is
	// abandoned rather than resumed.
	Sleep(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

// System returns a Clock backed by the wall clock.
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ManagedClock is a Clock whose time only moves when told to. Intended for
// tests: sleeping advances time instantly instead of blocking.
type ManagedClock struct {
	startTime time.Time
	offset    time.Duration
}

// NewManaged returns an initialized ManagedClock for use in tests.
func NewManaged(startTime time.Time) *ManagedClock {
	return &ManagedClock{startTime: startTime}
}

// Now returns the current managed time.
func (c *ManagedClock) Now() time.Time {
	return c.startTime.Add(c.offset)
}

// Sleep advances the managed time by d without blocking. A canceled context
// is still honored so cancellation paths stay testable.
func (c *ManagedClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.offset += d
	return nil
}

// WarpForward moves time forward by the provided offset and returns the new
// time. Time never moves backwards, especially in tests.
func (c *ManagedClock) WarpForward(offset time.Duration) time.Time {
	c.offset += offset
	return c.startTime.Add(c.offset)
}
