package sim

import (
	"fmt"
	"log"
	"sync"
)

// TickEvent is a generic event that almost all the component can use to
// update their status.
type TickEvent struct {
	EventBase

	epoch uint64
}

// MakeTickEvent creates a new TickEvent
func MakeTickEvent(handler Handler, time VTimeInCycle) TickEvent {
	evt := TickEvent{}
	evt.ID = GetIDGenerator().Generate()
	evt.handler = handler
	evt.time = time
	evt.secondary = false

	return evt
}

// A Ticker is an object that updates states with ticks.
type Ticker interface {
	Tick() bool
}

// TickScheduler is a one-shot timer that is reprogrammed after every tick. At
// most one tick is pending at a time. A suspended scheduler drops its pending
// tick and ignores requests until it is resumed.
type TickScheduler struct {
	lock    sync.Mutex
	handler Handler
	Engine  Engine

	epoch        uint64
	pending      bool
	suspended    bool
	nextTickTime VTimeInCycle
	busyUntil    VTimeInCycle
}

// NewTickScheduler creates a scheduler for tick events.
func NewTickScheduler(
	handler Handler,
	engine Engine,
) *TickScheduler {
	ticker := new(TickScheduler)

	ticker.handler = handler
	ticker.Engine = engine

	return ticker
}

// TickNow schedule a Tick event at the current time.
func (t *TickScheduler) TickNow() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.scheduleLocked(t.CurrentTime())
}

// TickAfter schedules a tick event the given number of cycles after now.
func (t *TickScheduler) TickAfter(cycles VTimeInCycle) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.scheduleLocked(t.CurrentTime() + cycles)
}

func (t *TickScheduler) scheduleLocked(time VTimeInCycle) {
	if t.suspended || t.pending {
		return
	}

	t.pending = true
	t.nextTickTime = time

	tick := MakeTickEvent(t.handler, time)
	tick.epoch = t.epoch

	t.Engine.Schedule(tick)
}

// Accept tells if a tick event is the one the scheduler is waiting for. Ticks
// that were scheduled before a Suspend are stale and rejected. A tick that
// arrives while the previous tick handler is still busy is a programming
// error.
func (t *TickScheduler) Accept(tick TickEvent) bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.suspended || tick.epoch != t.epoch {
		return false
	}

	if tick.Time() < t.busyUntil {
		log.Panicf(
			"tick overrun: tick @ %d fired while the handler is busy until %d",
			tick.Time(), t.busyUntil,
		)
	}

	t.pending = false

	return true
}

// Begin marks the tick handler as busy for the given number of cycles from
// now.
func (t *TickScheduler) Begin(busy VTimeInCycle) {
	t.lock.Lock()
	t.busyUntil = t.CurrentTime() + busy
	t.lock.Unlock()
}

// Suspend cancels the pending tick and stops the scheduler.
func (t *TickScheduler) Suspend() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.suspended = true
	t.pending = false
	t.epoch++
}

// Resume restarts a suspended scheduler with a tick at the current time, or
// at the end of the last busy period if that is later. It does nothing if the
// scheduler is running with a pending tick.
func (t *TickScheduler) Resume() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.suspended = false

	time := t.CurrentTime()
	if time < t.busyUntil {
		time = t.busyUntil
	}

	t.scheduleLocked(time)
}

// Suspended returns true if the scheduler is suspended.
func (t *TickScheduler) Suspended() bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.suspended
}

// NextTickTime returns the time of the pending tick and whether there is one.
func (t *TickScheduler) NextTickTime() (VTimeInCycle, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.nextTickTime, t.pending
}

// CurrentTime returns the current time of the engine.
func (t *TickScheduler) CurrentTime() VTimeInCycle {
	return t.Engine.CurrentTime()
}

// TickingComponent is a type of component that update states from cycle to
// cycle. A programmer would only need to program a tick function for a ticking
// component. The component keeps ticking every Interval cycles as long as the
// tick function makes progress.
type TickingComponent struct {
	*ComponentBase
	*TickScheduler

	Interval VTimeInCycle
	ticker   Ticker
}

// Handle triggers the tick function of the TickingComponent
func (c *TickingComponent) Handle(e Event) error {
	tick, ok := e.(TickEvent)
	if !ok {
		return fmt.Errorf("%s cannot handle event of type %T", c.Name(), e)
	}

	if !c.Accept(tick) {
		return nil
	}

	madeProgress := c.ticker.Tick()
	if madeProgress {
		c.TickAfter(c.Interval)
	}

	return nil
}

// NewTickingComponent creates a new ticking component
func NewTickingComponent(
	name string,
	engine Engine,
	interval VTimeInCycle,
	ticker Ticker,
) *TickingComponent {
	if interval == 0 {
		log.Panicf("ticking component %s must have a positive interval", name)
	}

	tc := new(TickingComponent)
	tc.TickScheduler = NewTickScheduler(tc, engine)
	tc.ComponentBase = NewComponentBase(name)
	tc.ticker = ticker
	tc.Interval = interval

	return tc
}
