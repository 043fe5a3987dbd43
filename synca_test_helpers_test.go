package synca

import (
	"sync"
	"testing"
	"time"
)

// newTestPool returns a small ThreadPool attached to DefaultTag for the
// duration of the test, detaching and stopping it on cleanup.
func newTestPool(t *testing.T, n int, name string) *ThreadPool {
	t.Helper()
	pool := NewThreadPool(n, WithThreadPoolName(name))
	SchedulerTag[DefaultTag]().Attach(pool)
	t.Cleanup(func() {
		SchedulerTag[DefaultTag]().Detach()
		pool.Stop()
		pool.Join()
	})
	return pool
}

// fakeTimerService is a TimerService whose timers fire only when the test
// calls fire/firePending, so timeout behaviour is asserted without
// wall-clock sleeps.
type fakeTimerService struct {
	mu      sync.Mutex
	entries []*fakeTimerEntry
}

type fakeTimerEntry struct {
	d         time.Duration
	fn        func()
	cancelled bool
	fired     bool
}

// newFakeTimerService attaches a fakeTimerService to TimeoutTag for the
// duration of the test.
func newFakeTimerService(t *testing.T) *fakeTimerService {
	t.Helper()
	fts := &fakeTimerService{}
	ServiceTag[TimeoutTag]().Attach(fts)
	t.Cleanup(func() { ServiceTag[TimeoutTag]().Detach() })
	return fts
}

func (f *fakeTimerService) After(d time.Duration, fn func()) func() {
	e := &fakeTimerEntry{d: d, fn: fn}
	f.mu.Lock()
	f.entries = append(f.entries, e)
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		e.cancelled = true
		f.mu.Unlock()
	}
}

// armed returns how many timers have been registered so far, fired,
// cancelled, or pending alike.
func (f *fakeTimerService) armed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// cancelledAt reports whether the i-th registered timer was cancelled.
func (f *fakeTimerService) cancelledAt(i int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[i].cancelled
}

// fire invokes the i-th registered timer's callback, unless it was
// cancelled or already fired.
func (f *fakeTimerService) fire(i int) {
	f.mu.Lock()
	e := f.entries[i]
	due := !e.cancelled && !e.fired
	e.fired = true
	f.mu.Unlock()
	if due {
		e.fn()
	}
}

// firePending invokes every not-yet-fired, not-cancelled timer callback.
// Callbacks may register fresh timers (a delayed task re-arming itself);
// those are left pending for the next call.
func (f *fakeTimerService) firePending() {
	f.mu.Lock()
	var due []func()
	for _, e := range f.entries {
		if !e.cancelled && !e.fired {
			e.fired = true
			due = append(due, e.fn)
		}
	}
	f.mu.Unlock()
	for _, fn := range due {
		fn()
	}
}

// waitUntil polls cond at a short interval until it returns true or the
// deadline elapses, failing the test in the latter case. Several of this
// package's suspension points resume on a different goroutine than the one
// that armed them, so tests observe completion by polling rather than by a
// single blocking receive.
func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before timeout")
		}
		time.Sleep(time.Millisecond)
	}
}
