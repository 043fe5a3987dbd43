// Package synca provides a coroutine/scheduler concurrency runtime: stackful
// coroutines emulated over goroutines, cooperative cancellation and timeouts,
// composite wait combinators, portals, and coroutine-aware channels.
//
// # Architecture
//
// A [Journey] is the per-task execution record: it owns one [Coroutine], pins
// a current [Scheduler], and holds an event-status handle (the [Goer]).
// [Go] spawns a Journey on a scheduler; inside the running coroutine, any
// blocking primitive ([Defer], [DeferProceed], [Teleport], [Channel.Get],
// [Waiter.Wait]) parks the coroutine and arms an external event
// source with a resume closure obtained from [Journey.ProceedHandler]. When
// that source fires, the journey resumes on a worker owned by its current
// scheduler.
//
// Two scheduler kinds are provided: [ThreadPool] (N workers draining a FIFO
// queue) and [Strand] (a serialising wrapper over any backing [Scheduler], at
// most one handler running at a time). [RateLimitedScheduler] decorates
// either with a sliding-window rate limit per category.
//
// # Platform Support
//
// The coroutine layer is pure Go: each [Coroutine] owns a dedicated goroutine
// used as its "stack", with control handed back and forth over a pair of
// unbuffered channels. No assembly, no raw thread-locals, no platform-specific
// code is required for the core; it runs identically on every platform Go
// supports.
//
// # Thread Safety
//
// A [Journey]'s coroutine executes on at most one goroutine at any instant,
// structurally rather than by convention, since the channel handoff makes
// concurrent execution of both sides impossible. [Goer] methods
// ([Goer.Cancel], [Goer.TimedOut], [Goer.Reset]) are safe to call from any
// goroutine. [Scheduler.Schedule] implementations are safe for concurrent
// callers. [Channel] is safe for any number of concurrent [Channel.Put]
// callers and any number of concurrent coroutine [Channel.Get] callers.
//
// # Execution Model
//
// Suspension is always explicit: [Defer], [DeferProceed], [Teleport], the
// composite wait combinators, and [Channel.Get] are the only suspension
// points. [Timeout.Close] checks for latched events but does not suspend.
// There is no implicit yielding and no preemption within a journey's own
// coroutine.
//
// # Usage
//
//	pool := synca.NewThreadPool(4, synca.WithThreadPoolName("workers"))
//	synca.SchedulerTag[synca.DefaultTag]().Attach(pool)
//	synca.ServiceTag[synca.TimeoutTag]().Attach(synca.NewTimerService())
//
//	g := synca.Go(func() {
//	    defer func() {
//	        if r := recover(); r != nil {
//	            fmt.Println("child failed:", r)
//	        }
//	    }()
//	    t := synca.NewTimeout(50 * time.Millisecond)
//	    defer t.Close()
//	    time.Sleep(200 * time.Millisecond)
//	})
//	_ = g
//
// # Error Types
//
// The package provides two panic-carried error types:
//   - [EventException]: cancellation or timeout, delivered at an event
//     checkpoint; recoverable by user code.
//   - [InvariantViolation]: misuse of a core primitive; fatal to the journey.
//
// Both implement the standard [error] interface and [errors.Unwrap] where a
// cause is available.
package synca
