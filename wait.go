package synca

import (
	"sync"
	"sync/atomic"
)

// GoWait spawns one journey per handler in handlers and suspends the
// current journey until all of them have returned or panicked. A panicking
// child still counts toward completion, but its panic is swallowed here;
// use GoAnyResult if the result matters.
func GoWait(handlers ...func()) {
	if len(handlers) == 0 {
		violate("gowait: at least one handler is required")
	}
	remaining := &atomic.Int64{}
	remaining.Store(int64(len(handlers)))
	DeferProceed(func(resume func()) {
		for _, h := range handlers {
			h := h
			Go(func() {
				defer func() {
					recover()
					if remaining.Add(-1) == 0 {
						resume()
					}
				}()
				h()
			})
		}
	})
}

// GoAnyWait spawns one journey per handler in handlers and resumes the
// current journey as soon as the first of them returns normally, returning
// that handler's index in handlers. The rest continue running in the
// background and are not cancelled automatically; callers who need that
// wrap each handler to observe a shared Goer.
//
// A handler that panics does not resolve the wait; if every handler
// panics, GoAnyWait still resumes the parent, returning -1, rather than
// leaving it parked forever.
func GoAnyWait(handlers ...func()) int {
	if len(handlers) == 0 {
		violate("goanywait: at least one handler is required")
	}
	var (
		resolved atomic.Bool
		winner   atomic.Int64
		failures atomic.Int64
	)
	winner.Store(-1)
	n := len(handlers)
	DeferProceed(func(resume func()) {
		for i, h := range handlers {
			i, h := i, h
			Go(func() {
				ok := false
				func() {
					defer func() {
						if r := recover(); r != nil {
							ok = false
						}
					}()
					h()
					ok = true
				}()
				if ok {
					if resolved.CompareAndSwap(false, true) {
						winner.Store(int64(i))
						resume()
					}
					return
				}
				if failures.Add(1) == int64(n) {
					if resolved.CompareAndSwap(false, true) {
						resume()
					}
				}
			})
		}
	})
	return int(winner.Load())
}

// GoAnyResult spawns n independent journeys each running one of handlers,
// suspends the current journey until the first one returns a value (a
// panicking handler does not resolve the wait unless every handler
// panics), and returns that value. Losers continue running in the
// background. If every handler panics, it returns the zero value of T. A
// handler cannot report "no result" except by panicking, and the caller
// cannot tell a zero-valued result from the all-panicked case.
func GoAnyResult[T any](handlers ...func() T) T {
	if len(handlers) == 0 {
		violate("goanyresult: at least one handler is required")
	}
	var (
		resolved atomic.Bool
		result   T
		failures atomic.Int64
	)
	n := len(handlers)
	DeferProceed(func(resume func()) {
		for _, h := range handlers {
			h := h
			Go(func() {
				ok := false
				var v T
				func() {
					defer func() {
						if r := recover(); r != nil {
							ok = false
						}
					}()
					v = h()
					ok = true
				}()
				if ok {
					if resolved.CompareAndSwap(false, true) {
						result = v
						resume()
					}
					return
				}
				if failures.Add(1) == int64(n) {
					if resolved.CompareAndSwap(false, true) {
						resume()
					}
				}
			})
		}
	})
	return result
}

// Waiter is a reusable, re-armable fan-out accumulator: Go adds a child
// journey to the Waiter's current generation, and Wait suspends the
// calling journey until every child added since the last Wait has
// completed, then re-arms so a fresh generation can be accumulated. It
// complements GoWait's one-shot, fixed-count form for callers that build
// up a variable number of children across a loop.
type Waiter struct {
	mu      sync.Mutex
	pending int
	resume  func()
}

// NewWaiter returns an empty, ready-to-use Waiter.
func NewWaiter() *Waiter {
	return &Waiter{}
}

// Go spawns a journey running h as a member of the Waiter's current
// generation and returns w, so calls can be chained (w.Go(a).Go(b)).
func (w *Waiter) Go(h func()) *Waiter {
	w.mu.Lock()
	w.pending++
	w.mu.Unlock()
	Go(func() {
		defer func() {
			recover()
			w.release()
		}()
		h()
	})
	return w
}

func (w *Waiter) release() {
	w.mu.Lock()
	w.pending--
	var resume func()
	if w.pending == 0 {
		resume = w.resume
		w.resume = nil
	}
	w.mu.Unlock()
	if resume != nil {
		resume()
	}
}

// Wait suspends the current journey until every child of the current
// generation has completed, then re-arms the Waiter for a new generation.
// Calling Wait with nothing outstanding returns immediately.
func (w *Waiter) Wait() {
	w.mu.Lock()
	if w.pending <= 0 {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()
	DeferProceed(func(resume func()) {
		w.mu.Lock()
		if w.pending <= 0 {
			w.mu.Unlock()
			resume()
			return
		}
		w.resume = resume
		w.mu.Unlock()
	})
}
