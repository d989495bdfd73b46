// Package keyer implements the iambic timing state machine.
//
// The machine advances once per tick. When the previous element has run to
// completion (Ready), it selects the next element from the paddles: a squeeze
// alternates between dit and dah, a single paddle repeats its element, and no
// paddle selects None. Every tick then runs the output action of the current
// element: a dit toggles the key, a dah holds the key for DahTicks ticks and
// releases it for one, None keeps the key up.
package keyer

import (
	"fmt"
	"log"
	"sync"

	"github.com/sarchlab/elkey/paddle"
)

// DefaultDahTicks is the conventional 3:1 dah to dit ratio.
const DefaultDahTicks = 3

// Element is the Morse element currently being keyed.
type Element uint8

// Elements of a Morse character.
const (
	None Element = iota
	Dit
	Dah
)

func (e Element) String() string {
	switch e {
	case None:
		return "None"
	case Dit:
		return "Dit"
	case Dah:
		return "Dah"
	default:
		return fmt.Sprintf("Element(%d)", uint8(e))
	}
}

// State is the state shared between the tick handler and the idle loop.
type State struct {
	Element    Element
	Ready      bool
	DahCounter uint8
	Keyed      bool
}

// IdleState is the state after power-up and after every reset.
var IdleState = State{Element: None, Ready: true}

// Machine is the keyer state machine. All the fields of the state are updated
// together inside one critical section, so that the idle loop never observes
// or produces a half-updated state.
type Machine struct {
	lock     sync.Mutex
	state    State
	dahTicks uint8
}

// NewMachine creates a Machine in the idle state. A dah lasts dahTicks ticks.
func NewMachine(dahTicks uint8) *Machine {
	if dahTicks == 0 {
		log.Panic("a dah must last at least one tick")
	}

	return &Machine{
		state:    IdleState,
		dahTicks: dahTicks,
	}
}

// DahTicks returns the number of ticks a dah is held.
func (m *Machine) DahTicks() uint8 {
	return m.dahTicks
}

// Tick advances the machine by one tick and returns whether the key should
// be down.
func (m *Machine) Tick(p paddle.PaddleState) bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.state.Ready {
		m.state.Element = selectElement(m.state.Element, p)
	}

	switch m.state.Element {
	case Dah:
		m.holdDah()
	case Dit:
		m.toggleDit()
	default:
		m.state.Keyed = false
		m.state.Ready = true
	}

	return m.state.Keyed
}

func selectElement(current Element, p paddle.PaddleState) Element {
	switch {
	case p.Both():
		if current == Dit {
			return Dah
		}
		return Dit
	case p.Dit:
		return Dit
	case p.Dah:
		return Dah
	default:
		return None
	}
}

func (m *Machine) holdDah() {
	if m.state.DahCounter < m.dahTicks {
		m.state.DahCounter++
		m.state.Keyed = true
		m.state.Ready = false

		return
	}

	m.state.DahCounter = 0
	m.state.Keyed = false
	m.state.Ready = true
}

// A dit is ready for the next decision at the tick whose toggle leaves the
// key up.
func (m *Machine) toggleDit() {
	m.state.Ready = m.state.Keyed
	m.state.Keyed = !m.state.Keyed
}

// Reset forces the idle state regardless of the element in progress. It
// returns false if the machine was already idle.
func (m *Machine) Reset() bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.state == IdleState {
		return false
	}

	m.state = IdleState

	return true
}

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() State {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.state
}
