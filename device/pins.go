package device

import (
	"github.com/sarchlab/elkey/hw"
	"github.com/sarchlab/elkey/sim"
)

// Pins are the hardware lines a keyer uses. Sidetone may be nil. Speed may be
// nil when speed control is disabled.
type Pins struct {
	Dit      hw.DigitalIn
	Dah      hw.DigitalIn
	Key      hw.DigitalOut
	Sidetone hw.DigitalOut
	Speed    hw.AnalogIn
	Sleeper  hw.Sleeper
}

// SimPins is a complete set of simulated pins.
type SimPins struct {
	Dit      *hw.SimInput
	Dah      *hw.SimInput
	Key      *hw.SimOutput
	Sidetone *hw.SimOutput
	Speed    *hw.SimAnalog
	Sleeper  *hw.SimSleeper
}

// NewSimPins creates simulated pins. Outputs are timestamped with the clock
// and the speed control starts at the given reading.
func NewSimPins(clock sim.TimeTeller, reading uint8) *SimPins {
	return &SimPins{
		Dit:      hw.NewSimInput("Dit"),
		Dah:      hw.NewSimInput("Dah"),
		Key:      hw.NewSimOutput("Key", clock),
		Sidetone: hw.NewSimOutput("Sidetone", clock),
		Speed:    hw.NewSimAnalog(reading),
		Sleeper:  &hw.SimSleeper{},
	}
}

// Pins returns the pins as the keyer sees them.
func (p *SimPins) Pins() Pins {
	return Pins{
		Dit:      p.Dit,
		Dah:      p.Dah,
		Key:      p.Key,
		Sidetone: p.Sidetone,
		Speed:    p.Speed,
		Sleeper:  p.Sleeper,
	}
}
