package sim

import (
	"log"
	"math"
	"time"
)

// Freq defines the type of frequency. For the keyer it is the number of time
// units per second of the base timer.
type Freq float64

// Defines the unit of frequency
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
)

// Period returns the duration of one time unit.
func (f Freq) Period() time.Duration {
	f.mustBeValid()
	return time.Duration(float64(time.Second) / float64(f))
}

// Seconds converts a number of cycles to seconds.
func (f Freq) Seconds(c VTimeInCycle) float64 {
	f.mustBeValid()
	return float64(c) / float64(f)
}

// Duration converts a number of cycles to a wall clock duration.
func (f Freq) Duration(c VTimeInCycle) time.Duration {
	return time.Duration(f.Seconds(c) * float64(time.Second))
}

// Cycles converts a wall clock duration to the nearest number of cycles.
//
//	    d
//	|---------->|
//	|----|----|----|----|----->
//	            |
//	            Cycles(d) = 2
func (f Freq) Cycles(d time.Duration) VTimeInCycle {
	f.mustBeValid()
	if d <= 0 {
		return 0
	}

	return VTimeInCycle(math.Round(d.Seconds() * float64(f)))
}

func (f Freq) mustBeValid() {
	if f <= 0 || math.IsNaN(float64(f)) {
		log.Panic("frequency must be positive")
	}
}
