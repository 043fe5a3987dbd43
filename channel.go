package synca

import (
	"iter"
	"sync"
)

// chanWaiter is one pending Get call on a Channel, parked on the waiters
// list while its owning journey is suspended.
type chanWaiter[T any] struct {
	val     T
	hasVal  bool
	proceed func()
}

// Channel is an unbounded multi-producer multi-consumer queue between
// journeys. Put never blocks. Get suspends the calling journey when the
// queue is empty, registering itself on an intrusive waiter list; Close
// wakes every parked waiter with a zero value and ok=false.
//
// The delicate part is that the channel's
// mutex stays locked across the suspension point in Get: the waiter is
// pushed onto the list before the coroutine yields, and the mutex is only
// released once the resume closure has been installed on the waiter, inside
// the DeferProceed callback. Unlocking any earlier would let a concurrent
// Put or Close pop the waiter and call its (not yet assigned) proceed
// function.
type Channel[T any] struct {
	mu      sync.Mutex
	queue   []T
	waiters []*chanWaiter[T]
	closed  bool
}

// NewChannel constructs an empty, open Channel.
func NewChannel[T any]() *Channel[T] {
	return &Channel[T]{}
}

// Put enqueues v, or hands it directly to the oldest parked Get if one is
// waiting. A value put after Close (and before any Open) is discarded, so
// it is never observed.
func (c *Channel[T]) Put(v T) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if len(c.waiters) > 0 {
		w := c.waiters[0]
		c.waiters = c.waiters[1:]
		c.mu.Unlock()
		w.val = v
		w.hasVal = true
		w.proceed()
		return
	}
	c.queue = append(c.queue, v)
	c.mu.Unlock()
}

// Get returns the oldest queued value, suspending the current journey until
// one arrives if the queue is empty. It returns ok=false if the channel is
// closed and drained before a value arrives.
func (c *Channel[T]) Get() (T, bool) {
	c.mu.Lock()
	if len(c.queue) > 0 {
		v := c.queue[0]
		c.queue = c.queue[1:]
		c.mu.Unlock()
		return v, true
	}
	if c.closed {
		c.mu.Unlock()
		var zero T
		return zero, false
	}
	w := &chanWaiter[T]{}
	c.waiters = append(c.waiters, w)
	DeferProceed(func(proceed func()) {
		w.proceed = proceed
		c.mu.Unlock()
	})
	return w.val, w.hasVal
}

// GetOrZero is Get without the ok flag, for callers that treat a closed,
// drained channel the same as a zero-valued read.
func (c *Channel[T]) GetOrZero() T {
	v, _ := c.Get()
	return v
}

// Len returns the number of values currently queued, not counting parked
// waiters.
func (c *Channel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Empty reports whether the queue currently holds no values. It says
// nothing about parked waiters or closed state.
func (c *Channel[T]) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue) == 0
}

// Close marks the channel closed and wakes every currently parked Get with
// ok=false. Values already queued remain retrievable; Close is idempotent.
func (c *Channel[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	ws := c.waiters
	c.waiters = nil
	c.mu.Unlock()
	for _, w := range ws {
		w.proceed()
	}
}

// Open clears a closed channel's closed flag, allowing Get to park new
// waiters again; it does not wake or otherwise affect waiters that were
// already released by a prior Close. Open reports whether the channel was
// actually closed beforehand.
func (c *Channel[T]) Open() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	was := c.closed
	c.closed = false
	return was
}

// All returns a range-over-func iterator yielding values from the channel
// until it is closed and drained. Like Get, it must be consumed from inside
// a running journey.
func (c *Channel[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := c.Get()
			if !ok {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}
