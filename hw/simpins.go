package hw

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/sarchlab/elkey/sim"
)

// SimInput is a DigitalIn whose level is driven by the simulation.
type SimInput struct {
	lock    sync.Mutex
	name    string
	level   bool
	handler func()
}

// NewSimInput creates a released SimInput.
func NewSimInput(name string) *SimInput {
	return &SimInput{name: name}
}

// Name returns the name of the input.
func (p *SimInput) Name() string {
	return p.name
}

// Get returns the current level.
func (p *SimInput) Get() bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.level
}

// SetChangeHandler registers the change handler.
func (p *SimInput) SetChangeHandler(handler func()) {
	p.lock.Lock()
	p.handler = handler
	p.lock.Unlock()
}

// Drive sets the level of the input. The change handler is called outside of
// the lock, and only if the level changes.
func (p *SimInput) Drive(level bool) {
	p.lock.Lock()
	if p.level == level {
		p.lock.Unlock()
		return
	}

	p.level = level
	handler := p.handler
	p.lock.Unlock()

	if handler != nil {
		handler()
	}
}

// Transition is a level change of an output at a certain time.
type Transition struct {
	Time  sim.VTimeInCycle
	Level bool
}

// SimOutput is a DigitalOut that remembers when its level changed.
type SimOutput struct {
	lock        sync.Mutex
	name        string
	clock       sim.TimeTeller
	level       bool
	transitions []Transition
}

// NewSimOutput creates a SimOutput that timestamps transitions with the given
// clock.
func NewSimOutput(name string, clock sim.TimeTeller) *SimOutput {
	return &SimOutput{name: name, clock: clock}
}

// Name returns the name of the output.
func (p *SimOutput) Name() string {
	return p.name
}

// Set changes the level of the output.
func (p *SimOutput) Set(level bool) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.level == level {
		return
	}

	p.level = level
	p.transitions = append(p.transitions, Transition{
		Time:  p.clock.CurrentTime(),
		Level: level,
	})
}

// Get returns the current level.
func (p *SimOutput) Get() bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.level
}

// Transitions returns a copy of the recorded transitions.
func (p *SimOutput) Transitions() []Transition {
	p.lock.Lock()
	defer p.lock.Unlock()

	t := make([]Transition, len(p.transitions))
	copy(t, p.transitions)

	return t
}

// SimAnalog is an AnalogIn with a value set by the simulation.
type SimAnalog struct {
	value   atomic.Uint32
	enabled atomic.Bool
	reads   atomic.Uint64
}

// NewSimAnalog creates a disabled SimAnalog holding the given value.
func NewSimAnalog(value uint8) *SimAnalog {
	a := &SimAnalog{}
	a.value.Store(uint32(value))

	return a
}

// Set changes the value the next conversion returns.
func (a *SimAnalog) Set(value uint8) {
	a.value.Store(uint32(value))
}

// Enable powers the converter.
func (a *SimAnalog) Enable() {
	a.enabled.Store(true)
}

// Disable powers the converter down.
func (a *SimAnalog) Disable() {
	a.enabled.Store(false)
}

// Enabled tells if the converter is powered.
func (a *SimAnalog) Enabled() bool {
	return a.enabled.Load()
}

// Read returns the current value. Reading a converter that is powered down is
// a programming error.
func (a *SimAnalog) Read() uint8 {
	if !a.enabled.Load() {
		log.Panic("reading a disabled analog channel")
	}

	a.reads.Add(1)

	return uint8(a.value.Load())
}

// Reads returns the number of conversions performed.
func (a *SimAnalog) Reads() uint64 {
	return a.reads.Load()
}

// SimSleeper counts sleep requests. A simulated device goes idle on its own
// once no events are left.
type SimSleeper struct {
	sleeps atomic.Uint64
}

// Sleep records a sleep request.
func (s *SimSleeper) Sleep() {
	s.sleeps.Add(1)
}

// Sleeps returns the number of sleep requests.
func (s *SimSleeper) Sleeps() uint64 {
	return s.sleeps.Load()
}
