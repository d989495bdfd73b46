package device

import (
	"log"

	"github.com/sarchlab/elkey/config"
	"github.com/sarchlab/elkey/keyer"
	"github.com/sarchlab/elkey/output"
	"github.com/sarchlab/elkey/paddle"
	"github.com/sarchlab/elkey/power"
	"github.com/sarchlab/elkey/sim"
	"github.com/sarchlab/elkey/speed"
)

// Builder can build keyers.
type Builder struct {
	engine sim.Engine
	cfg    config.Config
	pins   Pins
}

// MakeBuilder creates a builder with the default configuration.
func MakeBuilder() Builder {
	return Builder{cfg: config.Default()}
}

// WithEngine sets the engine that runs the keyer.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithConfig sets the configuration.
func (b Builder) WithConfig(cfg config.Config) Builder {
	b.cfg = cfg
	return b
}

// WithPins sets the hardware lines.
func (b Builder) WithPins(pins Pins) Builder {
	b.pins = pins
	return b
}

// Build creates a keyer. The keyer does not tick before Start is called.
func (b Builder) Build(name string) *Keyer {
	b.mustBeValid()

	k := &Keyer{
		cfg:    b.cfg,
		budget: b.cfg.TickBudget(),
	}
	k.ComponentBase = sim.NewComponentBase(name)
	k.TickScheduler = sim.NewTickScheduler(k, b.engine)

	k.sampler = b.buildSampler(name + ".Paddles")
	k.speed = speed.NewController(b.pins.Speed, b.cfg.SpeedSettings())
	k.machine = keyer.NewMachine(b.cfg.DahDurationTicks)
	k.output = output.NewDriver(b.pins.Key, b.buildSidetone(name+".Sidetone"))

	k.power = power.MakeBuilder().
		WithEngine(b.engine).
		WithPaddles(k.sampler).
		WithKeyer(k.machine).
		WithOutput(k.output).
		WithSpeed(k.speed).
		WithTicks(k.TickScheduler).
		WithSleeper(b.pins.Sleeper).
		WithPowerDown(b.cfg.PowerDownEnabled).
		Build(name + ".Power")

	k.sampler.AddListener(k.power.OnPaddleChange)

	return k
}

func (b Builder) buildSampler(name string) *paddle.Sampler {
	pb := paddle.MakeBuilder().WithEngine(b.engine)
	if b.cfg.DebounceEnabled {
		pb = pb.WithDebounce(b.cfg.DebounceCycles())
	}

	return pb.Build(name, b.pins.Dit, b.pins.Dah)
}

func (b Builder) buildSidetone(name string) *output.Sidetone {
	if !b.cfg.SidetoneEnabled || b.pins.Sidetone == nil {
		return nil
	}

	return output.NewSidetone(
		name, b.engine, b.cfg.SidetoneInterval(), b.pins.Sidetone)
}

func (b Builder) mustBeValid() {
	if err := b.cfg.Validate(); err != nil {
		log.Panic(err)
	}

	switch {
	case b.engine == nil:
		log.Panic("keyer requires an engine")
	case b.pins.Dit == nil || b.pins.Dah == nil:
		log.Panic("keyer requires both paddle lines")
	case b.pins.Key == nil:
		log.Panic("keyer requires a key line")
	case b.pins.Sleeper == nil:
		log.Panic("keyer requires a sleeper")
	case b.cfg.SpeedControlEnabled && b.pins.Speed == nil:
		log.Panic("speed control requires an analog input")
	}
}
