package sim

import (
	"log"
	"reflect"
)

// EventLogger is a hook that prints one line for every event an engine
// handles. Secondary events are marked with a star.
type EventLogger struct {
	logger *log.Logger
	freq   Freq
}

// NewEventLogger returns an EventLogger that writes to the logger. Times are
// printed in cycles of the base timer.
func NewEventLogger(logger *log.Logger) *EventLogger {
	return &EventLogger{logger: logger}
}

// WithFreq makes the logger also print the time in milliseconds.
func (h *EventLogger) WithFreq(freq Freq) *EventLogger {
	h.freq = freq
	return h
}

// Func writes the event information into the logger.
func (h *EventLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(Event)
	if !ok {
		return
	}

	mark := " "
	if evt.IsSecondary() {
		mark = "*"
	}

	target := "-"
	if comp, ok := evt.Handler().(Named); ok {
		target = comp.Name()
	}

	if h.freq == 0 {
		h.logger.Printf("%d%s %s -> %s",
			evt.Time(), mark, reflect.TypeOf(evt), target)
		return
	}

	h.logger.Printf("%d (%.3f ms)%s %s -> %s",
		evt.Time(), 1000*h.freq.Seconds(evt.Time()), mark,
		reflect.TypeOf(evt), target)
}
