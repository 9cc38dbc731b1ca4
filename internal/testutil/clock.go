package testutil

import (
	"sync"
	"time"

	"github.com/HerbHall/netinventory/pkg/models"
)

// Clock is a controllable time source. Pass clock.Now to
// inventory.WithClock to pin created_at stamps.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewClock returns a Clock initialized to the given time, or to
// 2025-01-01 00:00:00 UTC when none is given.
func NewClock(now ...time.Time) *Clock {
	t := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if len(now) > 0 {
		t = now[0]
	}
	return &Clock{now: t}
}

// Now returns the clock's current time, then moves it forward by the
// configured step.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Stamp returns the current time in created_at format without advancing.
func (c *Clock) Stamp() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.Format(models.CreatedAtLayout)
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Step makes every call to Now advance the clock by d.
func (c *Clock) Step(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step = d
}
