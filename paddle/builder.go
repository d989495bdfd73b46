package paddle

import (
	"log"

	"github.com/sarchlab/elkey/hw"
	"github.com/sarchlab/elkey/sim"
)

// Builder can build Samplers.
type Builder struct {
	engine   sim.Engine
	debounce bool
	settle   sim.VTimeInCycle
}

// MakeBuilder creates a Builder with debouncing disabled.
func MakeBuilder() Builder {
	return Builder{}
}

// WithEngine sets the engine that runs the settle delays.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithDebounce enables debouncing with the given settle delay.
func (b Builder) WithDebounce(settle sim.VTimeInCycle) Builder {
	b.debounce = true
	b.settle = settle
	return b
}

// WithoutDebounce makes the sampler trust the instantaneous level.
func (b Builder) WithoutDebounce() Builder {
	b.debounce = false
	b.settle = 0
	return b
}

// Build creates a Sampler over the given lines and registers the change
// handlers of the lines.
func (b Builder) Build(name string, dit, dah hw.DigitalIn) *Sampler {
	if b.engine == nil {
		log.Panic("paddle sampler requires an engine")
	}

	s := &Sampler{
		ComponentBase: sim.NewComponentBase(name),
		engine:        b.engine,
		lines:         [2]hw.DigitalIn{dit, dah},
		debounce:      b.debounce,
		settle:        b.settle,
	}

	s.latched[DitLine] = dit.Get()
	s.latched[DahLine] = dah.Get()

	dit.SetChangeHandler(func() { s.onEdge(DitLine) })
	dah.SetChangeHandler(func() { s.onEdge(DahLine) })

	return s
}
