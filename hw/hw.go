// Package hw describes the hardware the keyer core talks to: two paddle
// inputs, the key and sidetone outputs, the speed potentiometer and the
// low-power sleep primitive. Only the value contracts are modeled, never the
// registers.
package hw

// DigitalIn is a digital input line, such as a paddle contact.
type DigitalIn interface {
	// Get returns the current electrical level, true meaning pressed.
	Get() bool

	// SetChangeHandler registers the function called on every level change.
	// A pin that supports it should also be able to wake the device from
	// sleep with this notification.
	SetChangeHandler(handler func())
}

// DigitalOut is a digital output line, such as the key line.
type DigitalOut interface {
	Set(level bool)
	Get() bool
}

// AnalogIn is an 8-bit analog channel that is sampled on demand.
type AnalogIn interface {
	// Enable powers the converter.
	Enable()

	// Disable powers the converter down.
	Disable()

	// Enabled tells if the converter is powered.
	Enabled() bool

	// Read performs one blocking conversion.
	Read() uint8
}

// Sleeper puts the device into a low-power mode until a wake-capable input
// changes.
type Sleeper interface {
	Sleep()
}
