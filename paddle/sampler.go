package paddle

import (
	"fmt"
	"sync"

	"github.com/sarchlab/elkey/hw"
	"github.com/sarchlab/elkey/sim"
)

// settleEvent marks the end of the settle delay of one paddle line.
type settleEvent struct {
	*sim.EventBase

	line Line
}

// A Sampler turns the electrical level of the paddle lines into a logical
// pressed/released view.
//
// With debouncing enabled, a raw transition starts a settle delay, and the
// level found at the end of the delay becomes the logical level. Further
// transitions inside the delay are absorbed. With debouncing disabled, the
// logical level is the raw level.
//
// The debounce work happens in the pin-change path only. Read never waits.
type Sampler struct {
	*sim.ComponentBase

	engine   sim.Engine
	lines    [2]hw.DigitalIn
	debounce bool
	settle   sim.VTimeInCycle

	lock      sync.Mutex
	latched   [2]bool
	settling  [2]bool
	listeners []func(PaddleState)
}

// Read returns the current logical state of the paddles.
func (s *Sampler) Read() PaddleState {
	if !s.debounce {
		return PaddleState{
			Dit: s.lines[DitLine].Get(),
			Dah: s.lines[DahLine].Get(),
		}
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	return PaddleState{Dit: s.latched[DitLine], Dah: s.latched[DahLine]}
}

// AddListener registers a function that is called with the new logical state
// after every logical transition.
func (s *Sampler) AddListener(f func(PaddleState)) {
	s.lock.Lock()
	s.listeners = append(s.listeners, f)
	s.lock.Unlock()
}

// Debouncing tells if the sampler applies a settle delay.
func (s *Sampler) Debouncing() bool {
	return s.debounce
}

// Handle finishes the settle delay of a line.
func (s *Sampler) Handle(e sim.Event) error {
	evt, ok := e.(*settleEvent)
	if !ok {
		return fmt.Errorf("%s cannot handle event of type %T", s.Name(), e)
	}

	level := s.lines[evt.line].Get()

	s.lock.Lock()
	s.settling[evt.line] = false
	changed := s.latched[evt.line] != level
	s.latched[evt.line] = level
	state := PaddleState{Dit: s.latched[DitLine], Dah: s.latched[DahLine]}
	s.lock.Unlock()

	if changed {
		s.notify(state)
	}

	return nil
}

func (s *Sampler) onEdge(line Line) {
	if !s.debounce {
		s.notify(s.Read())
		return
	}

	s.lock.Lock()
	if s.settling[line] {
		s.lock.Unlock()
		return
	}
	s.settling[line] = true
	s.lock.Unlock()

	evt := &settleEvent{
		EventBase: sim.NewEventBase(s.engine.CurrentTime()+s.settle, s),
		line:      line,
	}
	s.engine.Schedule(evt)
}

func (s *Sampler) notify(state PaddleState) {
	s.lock.Lock()
	listeners := make([]func(PaddleState), len(s.listeners))
	copy(listeners, s.listeners)
	s.lock.Unlock()

	for _, f := range listeners {
		f(state)
	}
}
