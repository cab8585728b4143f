package driver

import (
	"context"
	"time"
)

// TickerClock is a Clock driven by a time.Ticker at a fixed frame interval.
// Callbacks run on the goroutine that called Run. While every subscription is
// paused the ticker is stopped.
type TickerClock struct {
	registry

	interval time.Duration
	start    time.Time
	wake     chan struct{}
}

// NewTickerClock creates a TickerClock ticking every interval.
func NewTickerClock(interval time.Duration) *TickerClock {
	if interval <= 0 {
		panic("driver: ticker clock needs a positive interval")
	}
	c := &TickerClock{
		interval: interval,
		start:    time.Now(),
		wake:     make(chan struct{}, 1),
	}
	c.onActive = c.signal
	return c
}

// Interval returns the frame interval.
func (c *TickerClock) Interval() time.Duration {
	return c.interval
}

func (c *TickerClock) signal() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Run delivers ticks until ctx is cancelled. Timestamps are seconds since the
// clock was created.
func (c *TickerClock) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	running := true
	for {
		if !c.hasActive() {
			if running {
				ticker.Stop()
				running = false
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-c.wake:
				continue
			}
		}
		if !running {
			ticker.Reset(c.interval)
			running = true
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.wake:
		case now := <-ticker.C:
			c.deliver(now.Sub(c.start).Seconds())
		}
	}
}
