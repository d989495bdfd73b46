package hw

import (
	"sync/atomic"
	"time"
)

// InterruptIn is an input whose change notification runs in interrupt
// context.
type InterruptIn interface {
	Get() bool
	SetInterrupt(f func()) error
}

// EdgePump carries pin-change interrupts to goroutine context. The interrupt
// only raises a flag, and Service runs the change handlers of the flagged
// inputs. Paddle handlers schedule events and take locks, which must not
// happen inside an interrupt.
type EdgePump struct {
	flags    []*atomic.Bool
	handlers []func()
}

// NewEdgePump creates an EdgePump without inputs.
func NewEdgePump() *EdgePump {
	return &EdgePump{}
}

// Input wraps an interrupt input into a DigitalIn whose change handler runs
// from the pump.
func (e *EdgePump) Input(in InterruptIn) DigitalIn {
	return &pumpedInput{in: in, pump: e}
}

// Pending tells if any input changed since the last Service.
func (e *EdgePump) Pending() bool {
	for _, f := range e.flags {
		if f.Load() {
			return true
		}
	}

	return false
}

// Service runs the handlers of the inputs that changed, once per input no
// matter how many interrupts arrived.
func (e *EdgePump) Service() {
	for i, f := range e.flags {
		if f.Swap(false) {
			e.handlers[i]()
		}
	}
}

// Run services the pump every period. It never returns.
func (e *EdgePump) Run(period time.Duration) {
	for {
		e.Service()
		time.Sleep(period)
	}
}

type pumpedInput struct {
	in   InterruptIn
	pump *EdgePump
}

func (p *pumpedInput) Get() bool {
	return p.in.Get()
}

func (p *pumpedInput) SetChangeHandler(handler func()) {
	flag := new(atomic.Bool)
	p.pump.flags = append(p.pump.flags, flag)
	p.pump.handlers = append(p.pump.handlers, handler)

	err := p.in.SetInterrupt(func() { flag.Store(true) })
	if err != nil {
		panic("hw: could not set pin interrupt: " + err.Error())
	}
}
