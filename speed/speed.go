// Package speed derives the keyer's dit unit from the speed potentiometer.
package speed

import (
	"errors"
	"math"
	"sync/atomic"

	"github.com/sarchlab/elkey/hw"
	"github.com/sarchlab/elkey/sim"
)

// DitsPerWord is the length of the standard word "PARIS" in dit units.
const DitsPerWord = 50

// ErrInvalidWPM indicates a speed that is not positive.
var ErrInvalidWPM = errors.New("WPM must be positive")

// Settings configures a Controller.
type Settings struct {
	// Enabled selects sampling the analog channel. A disabled controller
	// always returns DefaultInterval.
	Enabled bool

	// Scale is the number of cycles per step of the 8-bit reading.
	Scale sim.VTimeInCycle

	// DefaultInterval is the interval when speed control is disabled.
	DefaultInterval sim.VTimeInCycle

	// MinInterval is the shortest interval a reading can produce.
	MinInterval sim.VTimeInCycle

	// Latency is the worst-case duration of one analog conversion.
	Latency sim.VTimeInCycle
}

// A Controller samples the analog speed control and maps it to a tick
// interval. Sample is called from the tick handler and blocks for one
// conversion, bounded by Settings.Latency.
type Controller struct {
	adc      hw.AnalogIn
	settings Settings
	last     atomic.Uint64
}

// NewController creates a Controller. The converter is powered up when speed
// control is enabled.
func NewController(adc hw.AnalogIn, settings Settings) *Controller {
	c := &Controller{
		adc:      adc,
		settings: settings,
	}
	c.last.Store(uint64(settings.DefaultInterval))

	c.Enable()

	return c
}

// Sample reads the analog channel and returns the tick interval. Every call
// takes a fresh reading.
func (c *Controller) Sample() sim.VTimeInCycle {
	if !c.settings.Enabled {
		return c.settings.DefaultInterval
	}

	interval := Map(c.adc.Read(), c.settings.Scale, c.settings.MinInterval)
	c.last.Store(uint64(interval))

	return interval
}

// Last returns the most recently sampled interval.
func (c *Controller) Last() sim.VTimeInCycle {
	return sim.VTimeInCycle(c.last.Load())
}

// Latency returns the time one Sample blocks the tick handler.
func (c *Controller) Latency() sim.VTimeInCycle {
	if !c.settings.Enabled {
		return 0
	}

	return c.settings.Latency
}

// Enabled tells if the controller samples the analog channel.
func (c *Controller) Enabled() bool {
	return c.settings.Enabled
}

// Enable powers up the converter.
func (c *Controller) Enable() {
	if c.settings.Enabled && !c.adc.Enabled() {
		c.adc.Enable()
	}
}

// Disable powers down the converter.
func (c *Controller) Disable() {
	if c.settings.Enabled && c.adc.Enabled() {
		c.adc.Disable()
	}
}

// Map converts an 8-bit reading to an interval, clamped to min.
func Map(reading uint8, scale, min sim.VTimeInCycle) sim.VTimeInCycle {
	interval := sim.VTimeInCycle(reading) * scale
	if interval < min {
		return min
	}

	return interval
}

// IntervalToWPM returns the speed in words per minute of a dit unit.
func IntervalToWPM(interval sim.VTimeInCycle, freq sim.Freq) float64 {
	if interval == 0 {
		return math.Inf(1)
	}

	return 60 / (DitsPerWord * freq.Seconds(interval))
}

// WPMToInterval returns the dit unit of a speed in words per minute.
func WPMToInterval(wpm float64, freq sim.Freq) (sim.VTimeInCycle, error) {
	if wpm <= 0 || math.IsNaN(wpm) || math.IsInf(wpm, 0) {
		return 0, ErrInvalidWPM
	}

	seconds := 60 / (DitsPerWord * wpm)

	return sim.VTimeInCycle(math.Round(seconds * float64(freq))), nil
}
