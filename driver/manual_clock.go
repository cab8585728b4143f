package driver

import "sync"

// ManualClock is a Clock that only ticks when told to. It is used for
// deterministic tests and for rendering frames offline.
type ManualClock struct {
	registry

	nowMu sync.Mutex
	now   float64
}

// NewManualClock creates a ManualClock starting at the given time.
func NewManualClock(start float64) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the time of the last tick.
func (c *ManualClock) Now() float64 {
	c.nowMu.Lock()
	defer c.nowMu.Unlock()
	return c.now
}

// Tick delivers now to every unpaused subscription. Times earlier than the
// previous tick are raised to it to keep the clock monotonic.
func (c *ManualClock) Tick(now float64) {
	c.nowMu.Lock()
	if now < c.now {
		now = c.now
	}
	c.now = now
	c.nowMu.Unlock()

	c.deliver(now)
}

// Advance moves the clock forward by dt seconds and ticks.
func (c *ManualClock) Advance(dt float64) {
	c.Tick(c.Now() + dt)
}
