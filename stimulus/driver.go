package stimulus

import (
	"fmt"

	"github.com/sarchlab/elkey/paddle"
	"github.com/sarchlab/elkey/sim"
)

// Line is a paddle input whose level can be forced.
type Line interface {
	Drive(level bool)
}

type levelEvent struct {
	*sim.EventBase

	line  paddle.Line
	level bool
}

// Driver moves paddle lines at scheduled times. Level changes always happen
// inside the engine, so that a driver can be used from other goroutines.
type Driver struct {
	*sim.ComponentBase

	engine sim.Engine
	lines  [2]Line
	count  uint64
}

// NewDriver creates a Driver for the dit and dah lines.
func NewDriver(name string, engine sim.Engine, dit, dah Line) *Driver {
	return &Driver{
		ComponentBase: sim.NewComponentBase(name),
		engine:        engine,
		lines:         [2]Line{dit, dah},
	}
}

// Load schedules all the transitions of the script. Transitions before the
// current time are rejected.
func (d *Driver) Load(s Script) error {
	now := d.engine.CurrentTime()

	transitions := s.Transitions()
	for _, t := range transitions {
		if t.Time < now {
			return fmt.Errorf("%w: transition at %d is in the past (now %d)",
				ErrBadScript, t.Time, now)
		}
	}

	for _, t := range transitions {
		d.schedule(t)
	}

	return nil
}

// Set changes a paddle at the current time.
func (d *Driver) Set(line paddle.Line, level bool) {
	d.schedule(Transition{
		Time:  d.engine.CurrentTime(),
		Line:  line,
		Level: level,
	})
}

func (d *Driver) schedule(t Transition) {
	d.engine.Schedule(&levelEvent{
		EventBase: sim.NewEventBase(t.Time, d),
		line:      t.Line,
		level:     t.Level,
	})
}

// Handle applies a level change.
func (d *Driver) Handle(e sim.Event) error {
	evt, ok := e.(*levelEvent)
	if !ok {
		return fmt.Errorf("%s cannot handle event of type %T", d.Name(), e)
	}

	d.Lock()
	d.count++
	d.Unlock()

	d.lines[evt.line].Drive(evt.level)

	return nil
}

// Applied returns the number of level changes applied so far.
func (d *Driver) Applied() uint64 {
	d.Lock()
	defer d.Unlock()

	return d.count
}
