package synca

import "sync"

// StackHint is the nominal private-stack size (32 KiB) a Coroutine is
// modelled with. Go goroutine stacks grow dynamically from a much smaller
// initial size, so the constant is not consumed by Coroutine itself; it
// documents the footprint a caller should budget per coroutine.
const StackHint = 32 * 1024

// Coroutine is a stackful coroutine emulated over a dedicated goroutine. The
// goroutine is the coroutine's "private stack": it is spawned once by Start
// and parked on an unbuffered channel at every yield, so that at any instant
// exactly one of {the coroutine's goroutine, its resumer} is running. This is
// the async-await reimplementation strategy: Go has no user-space stack
// switching without assembly, so control is handed back and forth over
// channels instead of swapping machine contexts.
//
// A Coroutine is not safe for concurrent Resume calls: ownership is
// single-writer, and whoever holds the coroutine has the sole right to
// resume it.
type Coroutine struct {
	mu          sync.Mutex
	started     bool
	running     bool
	resumeCh    chan struct{}
	yieldCh     chan struct{}
	panicVal    any
	goroutineID uint64
}

// NewCoroutine returns an unstarted Coroutine.
func NewCoroutine() *Coroutine {
	return &Coroutine{}
}

// IsStarted reports whether the coroutine has been started and has not yet
// returned from its handler.
func (c *Coroutine) IsStarted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started
}

// Start begins executing handler on the coroutine's dedicated goroutine. It
// is legal only when the coroutine has never been started (or has fully
// finished a prior run... in practice a Coroutine is single-use per the
// Journey that owns it). Start blocks until the handler's first suspension
// point (a Yield call) or its return, then rethrows any panic captured
// during that span.
func (c *Coroutine) Start(handler func()) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		violate("coroutine already started")
	}
	c.started = true
	c.running = true
	c.resumeCh = make(chan struct{})
	c.yieldCh = make(chan struct{})
	c.mu.Unlock()

	go c.trampoline(handler)

	<-c.yieldCh
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
	c.rethrow()
}

// trampoline runs on the coroutine's dedicated backing goroutine for its
// entire life. It registers the goroutine's ID in the affinity registry
// before invoking handler, so there is no window in which handler's own
// goroutine is running but not yet bound: bind happens-before handler() on
// the same goroutine, so even a handler whose very first statement is a
// blocking primitive (yieldCurrent via Defer) always finds itself
// registered. Runs handler to completion, captures any panic, and performs
// the final yield back to whichever of Start/Resume is currently waiting.
func (c *Coroutine) trampoline(handler func()) {
	id := getGoroutineID()
	c.goroutineID = id
	coroutines.bind(id, c)
	defer func() {
		if r := recover(); r != nil {
			c.panicVal = r
		}
		c.mu.Lock()
		c.started = false
		c.mu.Unlock()
		coroutines.unbind(id)
		c.yieldCh <- struct{}{}
	}()
	handler()
}

// Resume continues a started, not-running coroutine from its last Yield. It
// blocks until the coroutine yields again or returns, then rethrows any
// captured panic on the calling goroutine.
func (c *Coroutine) Resume() {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		violate("cannot resume: coroutine not started")
	}
	if c.running {
		c.mu.Unlock()
		violate("cannot resume: coroutine already running")
	}
	c.running = true
	c.mu.Unlock()

	c.resumeCh <- struct{}{}
	<-c.yieldCh

	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
	c.rethrow()
}

func (c *Coroutine) rethrow() {
	if c.panicVal != nil {
		p := c.panicVal
		c.panicVal = nil
		panic(p)
	}
}

// yieldCurrent suspends the coroutine whose dedicated goroutine is currently
// calling it, returning control to whichever of Start/Resume is waiting. It
// is legal only when called from inside a running coroutine's own goroutine;
// callers reach it indirectly via Journey.Defer, never directly.
func yieldCurrent() {
	id := getGoroutineID()
	c, ok := coroutines.lookup(id)
	if !ok {
		violate("yield called outside of a running coroutine")
	}
	c.yieldCh <- struct{}{}
	<-c.resumeCh
}
