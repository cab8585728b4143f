package anim

import "fmt"

// State is the lifecycle of an Interpreted animation.
type State int

const (
	// Running means the animation needs further frames.
	Running State = iota
	// Done means the final value has been delivered.
	Done
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Interpreted binds an Animation to a duration in seconds and a sink that
// receives each sampled value. It is advanced by elapsed time since its start
// and is discarded once it reports Done.
type Interpreted struct {
	run      func(elapsed float64)
	duration float64
	done     bool
}

// Interpret creates an Interpreted for a. The duration must be positive.
func Interpret[A any](a Animation[A], duration float64, sink func(A)) *Interpreted {
	if !(duration > 0) {
		panic(fmt.Sprintf("anim: interpreted duration %v must be positive", duration))
	}
	if sink == nil {
		panic("anim: interpreted animation needs a sink")
	}
	return &Interpreted{
		run: func(elapsed float64) {
			sink(a.sample(elapsed / duration))
		},
		duration: duration,
	}
}

// Duration returns the length of the animation in seconds.
func (ia *Interpreted) Duration() float64 {
	return ia.duration
}

// Advance samples the animation at elapsed seconds, hands the value to the
// sink and reports whether the animation has finished. The frame that crosses
// the duration is still delivered. Once Done, Advance no longer calls the sink.
func (ia *Interpreted) Advance(elapsed float64) State {
	if ia.done {
		return Done
	}
	ia.run(elapsed)
	if elapsed >= ia.duration {
		ia.done = true
		return Done
	}
	return Running
}
