// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"sync"
	"time"
)

// StepClock is a deterministic wall clock for tests. The first call to Now
// returns the start time and each later call advances by step.
//
// Safe for concurrent use. Can be reset so the same scenario yields the same
// timestamps on every run.
type StepClock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	calls int64
}

// NewStepClock creates a clock starting at start. A zero step gives a fixed
// clock.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{start: start, step: step}
}

// Now returns the next timestamp. Its signature matches time.Now so it can be
// passed wherever a clock function is accepted.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.start.Add(time.Duration(c.calls) * c.step)
	c.calls++
	return t
}

// Calls returns how many times Now has been called.
func (c *StepClock) Calls() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Reset rewinds the clock to its start time.
func (c *StepClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = 0
}
