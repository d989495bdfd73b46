package power

import (
	"log"

	"github.com/sarchlab/elkey/hw"
	"github.com/sarchlab/elkey/sim"
)

// Builder can build power managers.
type Builder struct {
	engine    sim.Engine
	paddles   Paddles
	keyer     Keyer
	output    Output
	speed     Speed
	ticks     Ticks
	sleeper   hw.Sleeper
	powerDown bool
}

// MakeBuilder creates a builder with power-down enabled.
func MakeBuilder() Builder {
	return Builder{powerDown: true}
}

// WithEngine sets the engine that runs the polls.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithPaddles sets where the paddle state is read.
func (b Builder) WithPaddles(p Paddles) Builder {
	b.paddles = p
	return b
}

// WithKeyer sets the state machine to reset.
func (b Builder) WithKeyer(k Keyer) Builder {
	b.keyer = k
	return b
}

// WithOutput sets the key line driver.
func (b Builder) WithOutput(o Output) Builder {
	b.output = o
	return b
}

// WithSpeed sets the speed control.
func (b Builder) WithSpeed(s Speed) Builder {
	b.speed = s
	return b
}

// WithTicks sets the tick scheduler to suspend during sleep.
func (b Builder) WithTicks(t Ticks) Builder {
	b.ticks = t
	return b
}

// WithSleeper sets the low-power primitive.
func (b Builder) WithSleeper(s hw.Sleeper) Builder {
	b.sleeper = s
	return b
}

// WithPowerDown selects if the device sleeps when idle.
func (b Builder) WithPowerDown(enabled bool) Builder {
	b.powerDown = enabled
	return b
}

// Build creates a Manager in the awake state.
func (b Builder) Build(name string) *Manager {
	b.mustBeComplete()

	m := &Manager{
		engine:    b.engine,
		paddles:   b.paddles,
		keyer:     b.keyer,
		output:    b.output,
		speed:     b.speed,
		ticks:     b.ticks,
		sleeper:   b.sleeper,
		powerDown: b.powerDown,
	}
	m.ComponentBase = sim.NewComponentBase(name)

	return m
}

func (b Builder) mustBeComplete() {
	switch {
	case b.engine == nil:
		log.Panic("power manager requires an engine")
	case b.paddles == nil:
		log.Panic("power manager requires paddles")
	case b.keyer == nil:
		log.Panic("power manager requires a keyer")
	case b.output == nil:
		log.Panic("power manager requires an output")
	case b.speed == nil:
		log.Panic("power manager requires a speed control")
	case b.ticks == nil:
		log.Panic("power manager requires a tick scheduler")
	case b.sleeper == nil:
		log.Panic("power manager requires a sleeper")
	}
}
