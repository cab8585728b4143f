// Package stream renders animated scenes into LED frames and sends them to
// devices over MQTT or Open Pixel Control.
package stream

import (
	"bytes"
	"sync"

	"github.com/cnf/structhash"
	logxi "github.com/mgutz/logxi/v1"

	"github.com/matt-g-everett/ledanim/driver"
)

var logger = logxi.New("stream")

// Streamer renders a Scene on every clock tick and sends changed frames to an
// Output. While the scene is unchanged it pauses its own clock subscription;
// the next scene update resumes it.
type Streamer struct {
	clock  driver.Clock
	sub    driver.Subscription
	scene  *Scene
	output Output

	mu     sync.Mutex
	frame  *Frame
	last   []byte
	paused bool
	closed bool
	sent   int
	failed int
}

// NewStreamer creates a Streamer and subscribes it to clock. Subscribe it
// after the animation driver so each frame sees that tick's updates.
func NewStreamer(clock driver.Clock, scene *Scene, numPixels int, output Output) *Streamer {
	s := new(Streamer)
	s.clock = clock
	s.scene = scene
	s.output = output
	s.frame = NewFrame(numPixels)

	s.mu.Lock()
	s.sub = clock.Subscribe(s.onTick)
	s.mu.Unlock()

	scene.OnChange(s.wake)
	return s
}

func (s *Streamer) wake() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused && !s.closed {
		s.paused = false
		s.clock.Resume(s.sub)
	}
}

func (s *Streamer) onTick(now float64) {
	state := s.scene.Snapshot()
	digest := structhash.Md5(state, 1)

	s.mu.Lock()
	if bytes.Equal(digest, s.last) {
		if !s.paused && !s.closed {
			s.paused = true
			s.clock.Pause(s.sub)
		}
		s.mu.Unlock()
		return
	}
	s.last = digest
	frame := NewFrame(s.frame.Len())
	state.Render(frame)
	s.frame = frame
	s.mu.Unlock()

	err := s.output.Send(frame)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.failed++
		// Forget the digest so the frame is retried on the next tick.
		s.last = nil
		logger.Warn("Frame send failed", "err", err, "now", now)
		return
	}
	s.sent++
}

// Latest returns a copy of the most recently rendered frame.
func (s *Streamer) Latest() *Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame.Clone()
}

// Sent returns the number of frames delivered and failed.
func (s *Streamer) Sent() (sent int, failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent, s.failed
}

// Close unsubscribes from the clock. It is safe to call more than once.
func (s *Streamer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.clock.Unsubscribe(s.sub)
}
