package sim

import (
	"sync"
	"time"
)

// A RealTimeEngine runs events when the wall clock reaches their time. Unlike
// the SerialEngine, events may be scheduled from other goroutines, such as
// pin-change interrupts or the monitoring server, while Run is blocking.
//
// Events that are scheduled in the past run as soon as possible. The engine
// does not compensate for the latency of handlers.
type RealTimeEngine struct {
	HookableBase

	freq  Freq
	start time.Time

	queueLock      sync.Mutex
	queue          EventQueue
	secondaryQueue EventQueue

	wakeup   chan struct{}
	stop     chan struct{}
	stopOnce sync.Once

	// resume is non-nil while paused and closed by Continue.
	resume     chan struct{}
	resumeLock sync.Mutex
	handling   sync.Mutex

	singleRunLock sync.Mutex
}

// NewRealTimeEngine creates a RealTimeEngine whose time unit lasts one period
// of the given frequency.
func NewRealTimeEngine(freq Freq) *RealTimeEngine {
	freq.mustBeValid()

	e := new(RealTimeEngine)
	e.freq = freq
	e.start = time.Now()
	e.queue = NewEventQueue()
	e.secondaryQueue = NewEventQueue()
	e.wakeup = make(chan struct{}, 1)
	e.stop = make(chan struct{})

	return e
}

// Schedule registers an event. It is safe to call from any goroutine.
func (e *RealTimeEngine) Schedule(evt Event) {
	e.queueLock.Lock()
	if evt.IsSecondary() {
		e.secondaryQueue.Push(evt)
	} else {
		e.queue.Push(evt)
	}
	e.queueLock.Unlock()

	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

// CurrentTime returns the number of time units elapsed since the engine was
// created.
func (e *RealTimeEngine) CurrentTime() VTimeInCycle {
	return e.freq.Cycles(time.Since(e.start))
}

// Run handles the events until Stop is called. An empty queue does not end
// the run, since a sleeping keyer waits for the next paddle press.
func (e *RealTimeEngine) Run() error {
	e.singleRunLock.Lock()
	defer e.singleRunLock.Unlock()

	for {
		evt := e.peek()
		if evt == nil {
			select {
			case <-e.stop:
				return nil
			case <-e.wakeup:
				continue
			}
		}

		wait := time.Until(e.start.Add(e.freq.Duration(evt.Time())))
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-e.stop:
				timer.Stop()
				return nil
			case <-e.wakeup:
				timer.Stop()
			case <-timer.C:
			}

			continue
		}

		select {
		case <-e.stop:
			return nil
		default:
		}

		e.handleDue()
	}
}

func (e *RealTimeEngine) peek() Event {
	e.queueLock.Lock()
	defer e.queueLock.Unlock()

	_, evt := peekNext(e.queue, e.secondaryQueue)

	return evt
}

// popNext removes the earliest event. Events pushed since Run peeked are
// taken into account, and an earlier one is also due.
func (e *RealTimeEngine) popNext() Event {
	e.queueLock.Lock()
	defer e.queueLock.Unlock()

	queue, evt := peekNext(e.queue, e.secondaryQueue)
	if evt == nil {
		return nil
	}

	return queue.Pop()
}

// handleDue runs the earliest event unless the engine is stopped while
// paused.
func (e *RealTimeEngine) handleDue() {
	if !e.acquireHandling() {
		return
	}
	defer e.handling.Unlock()

	evt := e.popNext()
	if evt == nil {
		return
	}

	hookCtx := HookCtx{
		Domain: e,
		Pos:    HookPosBeforeEvent,
		Item:   evt,
	}
	e.InvokeHook(hookCtx)

	_ = evt.Handler().Handle(evt)

	hookCtx.Pos = HookPosAfterEvent
	e.InvokeHook(hookCtx)
}

// acquireHandling waits until the engine is not paused and locks the handling
// mutex. It returns false if the engine is stopped in the meantime.
func (e *RealTimeEngine) acquireHandling() bool {
	for {
		if resume := e.pauseChan(); resume != nil {
			select {
			case <-e.stop:
				return false
			case <-resume:
			}

			continue
		}

		e.handling.Lock()
		if e.pauseChan() == nil {
			return true
		}
		e.handling.Unlock()
	}
}

func (e *RealTimeEngine) pauseChan() chan struct{} {
	e.resumeLock.Lock()
	defer e.resumeLock.Unlock()

	return e.resume
}

// Stop makes Run return, even while paused. Events left in the queue are not
// handled.
func (e *RealTimeEngine) Stop() {
	e.stopOnce.Do(func() { close(e.stop) })
}

// Pause prevents the RealTimeEngine to trigger more events. It returns after
// the event being handled, if any, is finished. Events that become due while
// paused run late once Continue is called.
func (e *RealTimeEngine) Pause() {
	e.resumeLock.Lock()
	if e.resume == nil {
		e.resume = make(chan struct{})
	}
	e.resumeLock.Unlock()

	// Wait for the event in flight.
	e.handling.Lock()
	defer e.handling.Unlock()
}

// Continue allows the RealTimeEngine to trigger more events.
func (e *RealTimeEngine) Continue() {
	e.resumeLock.Lock()
	defer e.resumeLock.Unlock()

	if e.resume == nil {
		return
	}

	close(e.resume)
	e.resume = nil
}
