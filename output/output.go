// Package output drives the key line and the sidetone line.
package output

import (
	"github.com/sarchlab/elkey/hw"
	"github.com/sarchlab/elkey/sim"
)

// A Driver sets the key line from the keyer's decision.
type Driver struct {
	key      hw.DigitalOut
	sidetone *Sidetone
}

// NewDriver creates a Driver. The sidetone may be nil.
func NewDriver(key hw.DigitalOut, sidetone *Sidetone) *Driver {
	return &Driver{key: key, sidetone: sidetone}
}

// Apply sets the key line. Keying up also silences the sidetone.
func (d *Driver) Apply(keyed bool) {
	d.key.Set(keyed)

	if d.sidetone == nil {
		return
	}

	if keyed {
		d.sidetone.Start()
		return
	}

	d.sidetone.Stop()
}

// Keyed returns the level of the key line.
func (d *Driver) Keyed() bool {
	return d.key.Get()
}

// Sidetone returns the sidetone attached to the driver, if any.
func (d *Driver) Sidetone() *Sidetone {
	return d.sidetone
}

// Sidetone is a square-wave oscillator on the sidetone line. It toggles the
// line every Interval cycles between Start and Stop.
type Sidetone struct {
	*sim.TickingComponent

	line    hw.DigitalOut
	toggles uint64
}

// NewSidetone creates a stopped Sidetone.
func NewSidetone(
	name string,
	engine sim.Engine,
	interval sim.VTimeInCycle,
	line hw.DigitalOut,
) *Sidetone {
	s := &Sidetone{line: line}
	s.TickingComponent = sim.NewTickingComponent(name, engine, interval, s)
	s.Suspend()

	return s
}

// Start lets the oscillator run. Starting a running oscillator does nothing.
func (s *Sidetone) Start() {
	s.Resume()
}

// Stop halts the oscillator and leaves the line low.
func (s *Sidetone) Stop() {
	s.Suspend()
	s.line.Set(false)
}

// Running tells if the oscillator is running.
func (s *Sidetone) Running() bool {
	return !s.Suspended()
}

// Toggles returns the number of times the line has been toggled.
func (s *Sidetone) Toggles() uint64 {
	s.Lock()
	defer s.Unlock()

	return s.toggles
}

// Tick toggles the sidetone line.
func (s *Sidetone) Tick() bool {
	s.Lock()
	s.toggles++
	s.Unlock()

	s.line.Set(!s.line.Get())

	return true
}
