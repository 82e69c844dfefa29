package testfixtures

import (
	"sync"
	"time"
)

// ReferenceZone is a fixed UTC+7 zone so tests never depend on the host TZ.
var ReferenceZone = time.FixedZone("WIB", 7*3600)

// ReferenceTime is Wednesday 2026-03-11 08:30 in ReferenceZone.
func ReferenceTime() time.Time {
	return time.Date(2026, time.March, 11, 8, 30, 0, 0, ReferenceZone)
}

// At builds a time on the given day in ReferenceZone.
func At(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, ReferenceZone)
}

// Clock provides a controllable time source for tests.
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

// NewClock returns a clock initialised to start, or ReferenceTime when start is zero.
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}
	return &Clock{current: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// NowFunc exposes Now as a function suitable for dependency injection.
func (c *Clock) NowFunc() func() time.Time {
	if c == nil {
		return time.Now
	}
	return c.Now
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d and returns the updated time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	c.current = c.current.Add(d)
	updated := c.current
	c.mu.Unlock()
	return updated
}
