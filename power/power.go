// Package power runs the keyer's idle loop. Whenever the paddles are found
// released, it returns the keyer to its idle state, and, if allowed, puts the
// device to sleep until a paddle is pressed again.
package power

import (
	"fmt"
	"sync/atomic"

	"github.com/sarchlab/elkey/hw"
	"github.com/sarchlab/elkey/paddle"
	"github.com/sarchlab/elkey/sim"
)

// SleepState tells if the device is running or sleeping.
type SleepState uint32

// Sleep states.
const (
	Awake SleepState = iota
	Asleep
)

func (s SleepState) String() string {
	switch s {
	case Awake:
		return "Awake"
	case Asleep:
		return "Asleep"
	default:
		return fmt.Sprintf("SleepState(%d)", uint32(s))
	}
}

// HookPosReset is triggered when a poll returns the keyer to idle.
var HookPosReset = &sim.HookPos{Name: "Reset"}

// HookPosSleep is triggered right before the device goes to sleep.
var HookPosSleep = &sim.HookPos{Name: "Sleep"}

// HookPosWake is triggered when the device wakes up.
var HookPosWake = &sim.HookPos{Name: "Wake"}

// Notice is the hook item of the power hook positions.
type Notice struct {
	Time    sim.VTimeInCycle
	Paddles paddle.PaddleState
}

// Paddles is where the manager reads the paddle state.
type Paddles interface {
	Read() paddle.PaddleState
}

// Keyer is the state machine the manager resets.
type Keyer interface {
	Reset() bool
}

// Output is the key line driver.
type Output interface {
	Apply(keyed bool)
}

// Speed is the speed control whose converter is powered down during sleep.
type Speed interface {
	Enable()
	Disable()
}

// Ticks is the keyer's tick scheduler.
type Ticks interface {
	Suspend()
	Resume()
}

type pollEvent struct {
	*sim.EventBase
}

// Manager is the idle loop. It polls after every tick and after every
// logical paddle transition.
type Manager struct {
	*sim.ComponentBase

	engine    sim.Engine
	paddles   Paddles
	keyer     Keyer
	output    Output
	speed     Speed
	ticks     Ticks
	sleeper   hw.Sleeper
	powerDown bool

	state       atomic.Uint32
	pollPending atomic.Bool

	polls  atomic.Uint64
	resets atomic.Uint64
	sleeps atomic.Uint64
	wakes  atomic.Uint64
}

// State returns the sleep state.
func (m *Manager) State() SleepState {
	return SleepState(m.state.Load())
}

// PowerDown tells if the manager puts the device to sleep.
func (m *Manager) PowerDown() bool {
	return m.powerDown
}

// RequestPoll schedules a poll at the current time, after the primary events
// of the same time. Requests made while a poll is pending are merged.
func (m *Manager) RequestPoll() {
	if !m.pollPending.CompareAndSwap(false, true) {
		return
	}

	evt := pollEvent{
		EventBase: sim.NewSecondaryEventBase(m.engine.CurrentTime(), m),
	}
	m.engine.Schedule(evt)
}

// Handle runs a requested poll.
func (m *Manager) Handle(e sim.Event) error {
	if _, ok := e.(pollEvent); !ok {
		return fmt.Errorf("%s cannot handle event of type %T", m.Name(), e)
	}

	m.pollPending.Store(false)
	m.Poll()

	return nil
}

// Poll is one pass of the idle loop.
func (m *Manager) Poll() {
	m.polls.Add(1)

	p := m.paddles.Read()
	if !p.None() {
		return
	}

	if m.keyer.Reset() {
		m.resets.Add(1)
		m.invoke(HookPosReset, p)
	}
	m.output.Apply(false)

	if !m.powerDown {
		return
	}

	if !m.state.CompareAndSwap(uint32(Awake), uint32(Asleep)) {
		return
	}

	m.speed.Disable()
	m.ticks.Suspend()
	m.sleeps.Add(1)
	m.invoke(HookPosSleep, p)
	m.sleeper.Sleep()
}

// Wake brings a sleeping device back. The tick scheduler is resumed with a
// tick at the current time. It does nothing if the device is awake.
func (m *Manager) Wake() {
	if !m.state.CompareAndSwap(uint32(Asleep), uint32(Awake)) {
		return
	}

	m.speed.Enable()
	m.ticks.Resume()
	m.wakes.Add(1)
	m.invoke(HookPosWake, m.paddles.Read())
}

// OnPaddleChange is the paddle listener. A change wakes a sleeping device
// and asks for a poll.
func (m *Manager) OnPaddleChange(_ paddle.PaddleState) {
	m.Wake()
	m.RequestPoll()
}

// Polls returns the number of polls run.
func (m *Manager) Polls() uint64 {
	return m.polls.Load()
}

// Resets returns the number of polls that returned the keyer to idle.
func (m *Manager) Resets() uint64 {
	return m.resets.Load()
}

// Sleeps returns the number of times the device went to sleep.
func (m *Manager) Sleeps() uint64 {
	return m.sleeps.Load()
}

// Wakes returns the number of times the device woke up.
func (m *Manager) Wakes() uint64 {
	return m.wakes.Load()
}

func (m *Manager) invoke(pos *sim.HookPos, p paddle.PaddleState) {
	if m.NumHooks() == 0 {
		return
	}

	m.InvokeHook(sim.HookCtx{
		Domain: m,
		Pos:    pos,
		Item:   Notice{Time: m.engine.CurrentTime(), Paddles: p},
	})
}
