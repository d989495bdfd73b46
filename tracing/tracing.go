// Package tracing turns keyer hook activity into flat trace records and
// writes them to a backend.
package tracing

import (
	"fmt"
	"reflect"

	"github.com/sarchlab/elkey/device"
	"github.com/sarchlab/elkey/power"
	"github.com/sarchlab/elkey/sim"
)

// Kinds of records.
const (
	KindTick  = "tick"
	KindReset = "reset"
	KindSleep = "sleep"
	KindWake  = "wake"
)

// Record is one line of a keyer trace.
type Record struct {
	Time       uint64
	Kind       string
	Element    string
	Keyed      bool
	Ready      bool
	DahCounter uint8
	Interval   uint64
	Dit        bool
	Dah        bool
	Count      uint64
}

// A Backend stores records.
type Backend interface {
	Write(r Record)
	Flush()
}

// NamedHookable is a hookable object with a name, such as a keyer.
type NamedHookable interface {
	sim.Named
	sim.Hookable
	Hooks() []sim.Hook
}

// CollectTrace lets the backend receive the trace of a keyer. A backend can
// only be attached once to the same keyer.
func CollectTrace(domain NamedHookable, backend Backend) {
	for _, hook := range domain.Hooks() {
		h, ok := hook.(*Tracer)
		if ok && h.backend == backend {
			panic(fmt.Sprintf(
				"domain %s already has tracer %s",
				domain.Name(), reflect.TypeOf(backend)))
		}
	}

	domain.AcceptHook(NewTracer(backend))
}

// Tracer is a hook that converts keyer activity into records.
type Tracer struct {
	backend Backend
}

// NewTracer creates a Tracer that writes to the backend.
func NewTracer(backend Backend) *Tracer {
	return &Tracer{backend: backend}
}

// Func writes a record for tick and power hook positions and ignores the
// others.
func (t *Tracer) Func(ctx sim.HookCtx) {
	switch item := ctx.Item.(type) {
	case device.TickInfo:
		t.backend.Write(tickRecord(item))
	case power.Notice:
		kind, ok := noticeKind(ctx.Pos)
		if !ok {
			return
		}

		t.backend.Write(Record{
			Time:    uint64(item.Time),
			Kind:    kind,
			Element: "None",
			Dit:     item.Paddles.Dit,
			Dah:     item.Paddles.Dah,
		})
	}
}

func tickRecord(info device.TickInfo) Record {
	return Record{
		Time:       uint64(info.Time),
		Kind:       KindTick,
		Element:    info.State.Element.String(),
		Keyed:      info.State.Keyed,
		Ready:      info.State.Ready,
		DahCounter: info.State.DahCounter,
		Interval:   uint64(info.Interval),
		Dit:        info.Paddles.Dit,
		Dah:        info.Paddles.Dah,
		Count:      info.Count,
	}
}

func noticeKind(pos *sim.HookPos) (string, bool) {
	switch pos {
	case power.HookPosReset:
		return KindReset, true
	case power.HookPosSleep:
		return KindSleep, true
	case power.HookPosWake:
		return KindWake, true
	default:
		return "", false
	}
}
