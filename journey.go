package synca

import (
	"runtime"
	"sync/atomic"
)

var (
	journeysCreated   atomic.Int64
	journeysDestroyed atomic.Int64
	journeyIndexSeq   atomic.Int64
)

// Journey is the per-task execution record: it owns one Coroutine, pins a
// current Scheduler, and holds the deferred-resume continuation, the event
// state handle (Goer), and a task-local GC list. All of the package's free
// functions (Go, Teleport, Defer, ...) operate on whichever Journey is
// "current" on the calling goroutine.
type Journey struct {
	goer          Goer
	eventsAllowed atomic.Bool
	scheduler     Scheduler
	coro          *Coroutine
	deferHandler  func()
	index         int64
	gc            *gcList
}

// GoerHandle returns this journey's event-status handle.
func (j *Journey) GoerHandle() Goer {
	return j.goer
}

// Scheduler returns the scheduler the journey is currently pinned to.
func (j *Journey) Scheduler() Scheduler {
	return j.scheduler
}

// Index returns the journey's monotonic creation index.
func (j *Journey) Index() int64 {
	return j.index
}

// Current returns the Journey bound to the calling goroutine, panicking with
// an InvariantViolation if none is running there.
func Current() *Journey {
	j, ok := journeys.lookup(getGoroutineID())
	if !ok {
		violate("no current journey on this goroutine")
	}
	return j
}

// CurrentOrNil returns the Journey bound to the calling goroutine, or nil if
// none is running there. Unlike Current, it does not panic; useful for code
// that may run both inside and outside a journey.
func CurrentOrNil() *Journey {
	j, _ := journeys.lookup(getGoroutineID())
	return j
}

// Go creates a sibling journey on the default scheduler (DefaultTag) and
// returns its Goer handle.
func Go(handler func()) Goer {
	return GoOn(handler, DefaultScheduler())
}

// GoOn creates a sibling journey pinned to scheduler s and returns its Goer
// handle.
func GoOn(handler func(), s Scheduler) Goer {
	if s == nil {
		violate("go: scheduler must not be nil")
	}
	j := &Journey{
		scheduler: s,
		coro:      NewCoroutine(),
		index:     journeyIndexSeq.Add(1),
		gc:        newGCList(),
	}
	j.goer = newGoer()
	j.eventsAllowed.Store(true)
	journeysCreated.Add(1)

	wrapped := func() {
		id := getGoroutineID()
		journeys.bind(id, j)
		defer journeys.unbind(id)
		handler()
	}

	j.schedule(func() {
		j.runCoro(func() { j.coro.Start(wrapped) })
	})
	return j.goer
}

// GoN creates n independent sibling journeys running handler on the default
// scheduler. When n>1 this is optimised to a single parent Go spawning the n
// children; n==1 is a direct Go call with no extra parent journey.
func GoN(n int, handler func()) {
	if n <= 0 {
		violate("goN: count must be positive, got %d", n)
	}
	if n == 1 {
		Go(handler)
		return
	}
	Go(func() {
		for i := 0; i < n; i++ {
			Go(handler)
		}
	})
}

// schedule posts task to the journey's current scheduler, treating rejection
// as fatal misuse (a live journey assumes a live scheduler).
func (j *Journey) schedule(task func()) {
	if err := j.scheduler.Schedule(task); err != nil {
		panic(&InvariantViolation{Message: "scheduler rejected task", Cause: err})
	}
}

// runCoro wraps a single Start/Resume call with the "coro guard" logic: it
// always runs afterSwitch, even if step panics (an uncaught user panic
// propagating out of the coroutine), so the deferred-continuation-or-finish
// decision is made regardless of how the switch ended. Any panic continues
// to propagate to runCoro's own caller, the scheduler's worker, which
// recovers and logs it; failures never cross journey boundaries.
func (j *Journey) runCoro(step func()) {
	defer j.afterSwitch()
	step()
}

// afterSwitch is the coro-guard's onExit: if the coroutine registered a
// deferred continuation before yielding, invoke it; otherwise the coroutine
// returned for good, so tear down the journey.
func (j *Journey) afterSwitch() {
	if j.deferHandler != nil {
		h := j.deferHandler
		j.deferHandler = nil
		h()
		return
	}
	j.finish()
}

func (j *Journey) finish() {
	j.gc.runAll()
	journeysDestroyed.Add(1)
}

// ProceedHandler returns a closure that, when invoked from anywhere, posts
// "resume this journey on its current scheduler".
func (j *Journey) ProceedHandler() func() {
	return func() { j.proceed() }
}

func (j *Journey) proceed() {
	j.schedule(func() {
		j.runCoro(func() { j.coro.Resume() })
	})
}

// Teleport migrates the journey's remaining execution to scheduler s; it is
// a no-op if s is already the current scheduler.
func (j *Journey) Teleport(s Scheduler) {
	if s == nil {
		violate("teleport: scheduler must not be nil")
	}
	if s == j.scheduler {
		return
	}
	j.scheduler = s
	j.Defer(j.ProceedHandler())
}

// Defer stores k as the deferred continuation, yields the coroutine, and on
// resume invokes HandleEvents. k receives no arguments but may call
// ProceedHandler to obtain a resume closure.
func (j *Journey) Defer(k func()) {
	j.HandleEvents()
	j.deferHandler = k
	yieldCurrent()
	j.HandleEvents()
}

// DeferProceed is sugar for Defer(func(){ p(j.ProceedHandler()) }).
func (j *Journey) DeferProceed(p func(proceed func())) {
	j.Defer(func() {
		p(j.ProceedHandler())
	})
}

// HandleEvents reads and resets the journey's Goer if events are currently
// allowed; a non-Normal status panics with an *EventException.
func (j *Journey) HandleEvents() {
	if !j.eventsAllowed.Load() {
		return
	}
	if status := j.goer.Reset(); status != EventNormal {
		panic(&EventException{Status: status})
	}
}

// DisableEvents suppresses event delivery at checkpoints until EnableEvents
// is called. Latched events are not lost; they remain in the Goer.
func (j *Journey) DisableEvents() {
	j.HandleEvents()
	j.eventsAllowed.Store(false)
}

// EnableEvents re-enables event delivery and immediately checks for a
// latched event at this boundary.
func (j *Journey) EnableEvents() {
	j.eventsAllowed.Store(true)
	j.HandleEvents()
}

// EventsGuard lexically suppresses event delivery; construct with
// NewEventsGuard and Close it (typically via defer) to re-enable.
type EventsGuard struct {
	j *Journey
}

// NewEventsGuard disables events on the current journey and returns a guard
// that re-enables them on Close.
func NewEventsGuard() *EventsGuard {
	j := Current()
	j.DisableEvents()
	return &EventsGuard{j: j}
}

// Close re-enables events on the journey that created this guard.
func (g *EventsGuard) Close() {
	g.j.EnableEvents()
}

// Package-level free functions operating on Current(), so call sites inside
// a coroutine need not thread the Journey pointer through.

// Teleport migrates the current journey to scheduler s.
func Teleport(s Scheduler) { Current().Teleport(s) }

// Defer stores k as the current journey's deferred continuation and yields.
func Defer(k func()) { Current().Defer(k) }

// DeferProceed is sugar for Defer(func(){ p(Current().ProceedHandler()) })
// on the current journey.
func DeferProceed(p func(proceed func())) { Current().DeferProceed(p) }

// HandleEvents materialises any latched event on the current journey.
func HandleEvents() { Current().HandleEvents() }

// DisableEvents suppresses event delivery on the current journey.
func DisableEvents() { Current().DisableEvents() }

// EnableEvents re-enables event delivery on the current journey.
func EnableEvents() { Current().EnableEvents() }

// Index returns the current journey's monotonic creation index.
func Index() int64 { return Current().index }

// WaitForAllJourneys busy-polls until every created journey has been
// destroyed. It is a test-only helper and should not be used in production
// control flow.
func WaitForAllJourneys() {
	for journeysCreated.Load() != journeysDestroyed.Load() {
		runtime.Gosched()
	}
}
