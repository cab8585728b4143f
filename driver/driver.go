// Package driver advances interpreted animations in lock-step with a frame
// clock.
//
// A [Driver] owns the working set of running animations. Each animation is
// stamped with the time of the first tick that sees it, advanced once per
// tick and dropped on the tick it reports done. The clock subscription is
// paused while nothing is running and resumed by the next [Driver.Submit].
package driver

import (
	"sync"

	logxi "github.com/mgutz/logxi/v1"

	"github.com/matt-g-everett/ledanim/anim"
)

var logger = logxi.New("driver")

type entry struct {
	start float64
	anim  *anim.Interpreted
}

// Stats is a point in time view of a Driver.
type Stats struct {
	Active  int  `json:"active"`
	Pending int  `json:"pending"`
	Paused  bool `json:"paused"`
	Ticks   int  `json:"ticks"`
}

// Driver multiplexes animations onto a single clock subscription.
type Driver struct {
	clock Clock
	sub   Subscription

	// mu guards the fields that Submit shares with the tick callback.
	mu      sync.Mutex
	pending []*anim.Interpreted
	paused  bool
	closed  bool

	// tickMu guards the working set, which only the tick callback changes.
	tickMu sync.Mutex
	active []entry
	ticks  int
}

// New creates a Driver subscribed to clock. The subscription starts paused.
func New(clock Clock) *Driver {
	d := &Driver{clock: clock}
	d.mu.Lock()
	d.sub = clock.Subscribe(d.onTick)
	clock.Pause(d.sub)
	d.paused = true
	d.mu.Unlock()
	return d
}

// Submit queues a for the next tick and wakes the clock if it was idle. It is
// safe to call from any goroutine, including from a sink during a tick; such
// animations start on the following tick.
func (d *Driver) Submit(a *anim.Interpreted) {
	if a == nil {
		panic("driver: submitted a nil animation")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		logger.Warn("Dropping animation submitted after close", "duration", a.Duration())
		return
	}
	d.pending = append(d.pending, a)
	if d.paused {
		d.paused = false
		d.clock.Resume(d.sub)
	}
}

func (d *Driver) onTick(now float64) {
	d.tickMu.Lock()
	defer d.tickMu.Unlock()
	d.ticks++

	d.mu.Lock()
	for _, a := range d.pending {
		d.active = append(d.active, entry{start: now, anim: a})
	}
	clear(d.pending)
	d.pending = d.pending[:0]
	d.mu.Unlock()

	// Filter in place so removals never skip the following entry.
	kept := d.active[:0]
	for _, e := range d.active {
		if e.anim.Advance(now-e.start) == anim.Running {
			kept = append(kept, e)
		} else if logger.IsDebug() {
			logger.Debug("Animation done", "start", e.start, "now", now)
		}
	}
	clear(d.active[len(kept):])
	d.active = kept

	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.active) == 0 && len(d.pending) == 0 && !d.paused && !d.closed {
		d.paused = true
		d.clock.Pause(d.sub)
	}
}

// Active returns the number of running animations. It must not be called
// from a sink.
func (d *Driver) Active() int {
	d.tickMu.Lock()
	defer d.tickMu.Unlock()
	return len(d.active)
}

// Stats returns the current counters. It must not be called from a sink.
func (d *Driver) Stats() Stats {
	d.tickMu.Lock()
	defer d.tickMu.Unlock()
	d.mu.Lock()
	defer d.mu.Unlock()
	return Stats{
		Active:  len(d.active),
		Pending: len(d.pending),
		Paused:  d.paused,
		Ticks:   d.ticks,
	}
}

// Close unsubscribes from the clock. Animations still running are abandoned.
// Close may be called more than once.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	d.clock.Unsubscribe(d.sub)
}
