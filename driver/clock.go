package driver

import (
	"sort"
	"sync"
)

// Subscription identifies a callback registered with a Clock.
type Subscription uint64

// Clock delivers a monotonically non-decreasing timestamp, in seconds, to
// every unpaused subscription once per frame. Pausing is an efficiency hint:
// a clock that keeps ticking is still correct.
type Clock interface {
	Subscribe(callback func(now float64)) Subscription
	Pause(sub Subscription)
	Resume(sub Subscription)
	// Unsubscribe removes the subscription. Unknown or already removed
	// subscriptions are ignored.
	Unsubscribe(sub Subscription)
}

type subscriber struct {
	callback func(now float64)
	paused   bool
}

// registry is the subscription bookkeeping shared by the clock
// implementations. Callbacks are delivered in subscription order.
type registry struct {
	mu       sync.Mutex
	next     Subscription
	subs     map[Subscription]*subscriber
	onActive func()
}

// Subscribe registers callback. New subscriptions start unpaused.
func (r *registry) Subscribe(callback func(now float64)) Subscription {
	r.mu.Lock()
	if r.subs == nil {
		r.subs = make(map[Subscription]*subscriber)
	}
	r.next++
	sub := r.next
	r.subs[sub] = &subscriber{callback: callback}
	r.mu.Unlock()

	r.notifyActive()
	return sub
}

// Pause stops deliveries to sub until Resume.
func (r *registry) Pause(sub Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.subs[sub]; ok {
		s.paused = true
	}
}

// Resume restarts deliveries to sub.
func (r *registry) Resume(sub Subscription) {
	r.mu.Lock()
	s, ok := r.subs[sub]
	if ok {
		s.paused = false
	}
	r.mu.Unlock()

	if ok {
		r.notifyActive()
	}
}

// Unsubscribe removes sub.
func (r *registry) Unsubscribe(sub Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, sub)
}

// Paused reports whether sub is registered and paused.
func (r *registry) Paused(sub Subscription) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[sub]
	return ok && s.paused
}

// Subscribed reports whether sub is registered.
func (r *registry) Subscribed(sub Subscription) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.subs[sub]
	return ok
}

func (r *registry) notifyActive() {
	if r.onActive != nil {
		r.onActive()
	}
}

func (r *registry) hasActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subs {
		if !s.paused {
			return true
		}
	}
	return false
}

// deliver calls every unpaused callback with now. The lock is released
// before the callbacks run so they may pause, resume or subscribe.
func (r *registry) deliver(now float64) {
	r.mu.Lock()
	if len(r.subs) == 0 {
		r.mu.Unlock()
		return
	}
	ids := make([]Subscription, 0, len(r.subs))
	for id, s := range r.subs {
		if !s.paused {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	callbacks := make([]func(float64), len(ids))
	for i, id := range ids {
		callbacks[i] = r.subs[id].callback
	}
	r.mu.Unlock()

	for _, callback := range callbacks {
		callback(now)
	}
}
