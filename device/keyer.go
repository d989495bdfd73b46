// Package device assembles a complete keyer: paddle sampler, speed control,
// state machine, output driver and power manager around one tick scheduler.
package device

import (
	"fmt"
	"sync/atomic"

	"github.com/sarchlab/elkey/config"
	"github.com/sarchlab/elkey/keyer"
	"github.com/sarchlab/elkey/output"
	"github.com/sarchlab/elkey/paddle"
	"github.com/sarchlab/elkey/power"
	"github.com/sarchlab/elkey/sim"
	"github.com/sarchlab/elkey/speed"
)

// HookPosTick is triggered at the end of every accepted tick. The item is a
// TickInfo.
var HookPosTick = &sim.HookPos{Name: "Tick"}

// Hook positions of the power manager. A hook registered on the Keyer is also
// registered on its power manager.
var (
	HookPosReset = power.HookPosReset
	HookPosSleep = power.HookPosSleep
	HookPosWake  = power.HookPosWake
)

// TickInfo describes one tick.
type TickInfo struct {
	Time     sim.VTimeInCycle
	Paddles  paddle.PaddleState
	State    keyer.State
	Interval sim.VTimeInCycle
	Count    uint64
}

// Keyer is the tick context of the device. Each tick reads the paddles,
// advances the state machine, drives the key line, samples the speed control
// and arms the next tick with the fresh interval.
type Keyer struct {
	*sim.ComponentBase
	*sim.TickScheduler

	cfg     config.Config
	sampler *paddle.Sampler
	speed   *speed.Controller
	machine *keyer.Machine
	output  *output.Driver
	power   *power.Manager
	budget  sim.VTimeInCycle

	ticks atomic.Uint64
}

// Start arms the first tick after the default interval and runs one pass of
// the idle loop. With power-down enabled and the paddles released, the device
// goes to sleep right away.
func (k *Keyer) Start() {
	k.TickAfter(k.speed.Last())
	k.power.RequestPoll()
}

// Handle runs one tick.
func (k *Keyer) Handle(e sim.Event) error {
	tick, ok := e.(sim.TickEvent)
	if !ok {
		return fmt.Errorf("%s cannot handle event of type %T", k.Name(), e)
	}

	if !k.Accept(tick) {
		return nil
	}

	k.Begin(k.budget + k.speed.Latency())

	p := k.sampler.Read()
	keyed := k.machine.Tick(p)
	k.output.Apply(keyed)

	interval := k.speed.Sample()
	k.TickAfter(interval)
	k.power.RequestPoll()

	count := k.ticks.Add(1)

	if k.NumHooks() > 0 {
		k.InvokeHook(sim.HookCtx{
			Domain: k,
			Pos:    HookPosTick,
			Item: TickInfo{
				Time:     tick.Time(),
				Paddles:  p,
				State:    k.machine.Snapshot(),
				Interval: interval,
				Count:    count,
			},
		})
	}

	return nil
}

// AcceptHook registers a hook on the keyer and on its power manager.
func (k *Keyer) AcceptHook(hook sim.Hook) {
	k.ComponentBase.AcceptHook(hook)
	k.power.AcceptHook(hook)
}

// Ticks returns the number of ticks handled.
func (k *Keyer) Ticks() uint64 {
	return k.ticks.Load()
}

// Config returns the configuration the keyer was built with.
func (k *Keyer) Config() config.Config {
	return k.cfg
}

// Sampler returns the paddle sampler.
func (k *Keyer) Sampler() *paddle.Sampler {
	return k.sampler
}

// Speed returns the speed controller.
func (k *Keyer) Speed() *speed.Controller {
	return k.speed
}

// Machine returns the keyer state machine.
func (k *Keyer) Machine() *keyer.Machine {
	return k.machine
}

// Output returns the output driver.
func (k *Keyer) Output() *output.Driver {
	return k.output
}

// Power returns the power manager.
func (k *Keyer) Power() *power.Manager {
	return k.power
}
