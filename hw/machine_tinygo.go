//go:build tinygo && avr

package hw

import (
	"device/avr"
	"machine"
	"runtime/interrupt"
)

// MachineInput is a paddle contact wired to a pull-up pin, pressed when the
// pin reads low. Its interrupt is meant to go through an EdgePump.
type MachineInput struct {
	Pin machine.Pin
}

// Configure sets the pin up as a pulled-up input.
func (p MachineInput) Configure() {
	p.Pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
}

// Get returns true while the paddle is pressed.
func (p MachineInput) Get() bool {
	return !p.Pin.Get()
}

// SetInterrupt calls f from the pin-change interrupt, which is also the wake
// source of the device.
func (p MachineInput) SetInterrupt(f func()) error {
	return p.Pin.SetInterrupt(machine.PinToggle, func(machine.Pin) {
		f()
	})
}

// MachineOutput is an active-high output pin.
type MachineOutput struct {
	Pin machine.Pin
}

// Configure sets the pin up as an output, low.
func (p MachineOutput) Configure() {
	p.Pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Pin.Low()
}

// Set drives the pin.
func (p MachineOutput) Set(level bool) {
	p.Pin.Set(level)
}

// Get reads back the driven level.
func (p MachineOutput) Get() bool {
	return p.Pin.Get()
}

// MachineAnalog is the speed potentiometer on an ADC channel. Only the eight
// most significant bits of a conversion are used.
type MachineAnalog struct {
	ADC     machine.ADC
	enabled bool
}

// Enable powers the converter and configures the channel.
func (a *MachineAnalog) Enable() {
	if a.enabled {
		return
	}

	machine.InitADC()
	a.ADC.Configure(machine.ADCConfig{})
	a.enabled = true
}

// Disable turns the converter off.
func (a *MachineAnalog) Disable() {
	avr.ADCSRA.ClearBits(avr.ADCSRA_ADEN)
	a.enabled = false
}

// Enabled tells if the converter is powered.
func (a *MachineAnalog) Enabled() bool {
	return a.enabled
}

// Read performs a blocking conversion.
func (a *MachineAnalog) Read() uint8 {
	return uint8(a.ADC.Get() >> 8)
}

// MachineSleeper executes the sleep instruction. The board setup selects the
// power-down mode and sets the sleep-enable bit once.
type MachineSleeper struct {
	Pump *EdgePump
}

// Sleep halts the core until an interrupt, such as a paddle pin change, and
// then services the pump. It does not sleep if a change is already waiting.
func (s MachineSleeper) Sleep() {
	state := interrupt.Disable()
	if s.Pump != nil && s.Pump.Pending() {
		interrupt.Restore(state)
		s.Pump.Service()

		return
	}

	// The instruction after sei runs before any interrupt, so a change
	// cannot slip in between.
	avr.Asm("sei\n\tsleep")
	interrupt.Restore(state)

	if s.Pump != nil {
		s.Pump.Service()
	}
}
