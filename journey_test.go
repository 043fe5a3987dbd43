package synca

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGo_RunsOnDefaultScheduler(t *testing.T) {
	newTestPool(t, 2, "default")

	ran := make(chan struct{})
	Go(func() { close(ran) })

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("Go handler never ran")
	}
}

func TestGoOn_RunsOnNamedScheduler(t *testing.T) {
	pool := newTestPool(t, 1, "default")
	other := NewThreadPool(1, WithThreadPoolName("other"))
	defer func() { other.Stop(); other.Join() }()

	seen := make(chan string, 1)
	GoOn(func() { seen <- Current().Scheduler().Name() }, other)

	select {
	case name := <-seen:
		assert.Equal(t, "other", name)
	case <-time.After(time.Second):
		t.Fatal("GoOn handler never ran")
	}
	_ = pool
}

func TestGoN_SpawnsNIndependentJourneys(t *testing.T) {
	newTestPool(t, 4, "default")

	var count atomic.Int64
	done := make(chan struct{})
	const n = 10
	GoN(n, func() {
		if count.Add(1) == n {
			close(done)
		}
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("only %d/%d goN children ran", count.Load(), n)
	}
}

func TestGoN_OneIsPlainGo(t *testing.T) {
	newTestPool(t, 1, "default")
	ran := make(chan struct{})
	GoN(1, func() { close(ran) })
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("goN(1, ...) never ran")
	}
}

func TestGoN_NonPositivePanics(t *testing.T) {
	newTestPool(t, 1, "default")
	assert.Panics(t, func() { GoN(0, func() {}) })
}

func TestTeleport_MovesJourneyBetweenPools(t *testing.T) {
	tp1 := NewThreadPool(1, WithThreadPoolName("tp1"))
	tp2 := NewThreadPool(1, WithThreadPoolName("tp2"))
	defer func() { tp1.Stop(); tp1.Join() }()
	defer func() { tp2.Stop(); tp2.Join() }()
	SchedulerTag[DefaultTag]().Attach(tp1)
	defer SchedulerTag[DefaultTag]().Detach()

	names := make(chan string, 2)
	done := make(chan struct{})
	Go(func() {
		names <- Current().Scheduler().Name()
		Teleport(tp2)
		names <- Current().Scheduler().Name()
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("teleport journey never finished")
	}
	assert.Equal(t, "tp1", <-names)
	assert.Equal(t, "tp2", <-names)
}

func TestTeleport_NoOpWhenAlreadyOnTarget(t *testing.T) {
	pool := newTestPool(t, 1, "default")
	done := make(chan struct{})
	Go(func() {
		before := Current().Scheduler()
		Teleport(pool)
		assert.Same(t, before, Current().Scheduler())
		close(done)
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("journey never finished")
	}
}

func TestTeleport_NilSchedulerPanics(t *testing.T) {
	newTestPool(t, 1, "default")
	failed := make(chan any, 1)
	Go(func() {
		defer func() { failed <- recover() }()
		Teleport(nil)
	})
	select {
	case r := <-failed:
		require.NotNil(t, r)
	case <-time.After(time.Second):
		t.Fatal("expected a panic from Teleport(nil)")
	}
}

func TestHandleEvents_DeliversCancelAtCheckpoint(t *testing.T) {
	newTestPool(t, 1, "default")

	caught := make(chan EventStatus, 1)
	var goer atomic.Pointer[Goer]
	var resume atomic.Pointer[func()]
	reachedCheckpoint := make(chan struct{})

	Go(func() {
		defer func() {
			if r := recover(); r != nil {
				if ee, ok := r.(*EventException); ok {
					caught <- ee.Status
				}
			}
		}()
		g := Current().GoerHandle()
		goer.Store(&g)
		DeferProceed(func(proceed func()) {
			resume.Store(&proceed)
			close(reachedCheckpoint)
		})
	})

	<-reachedCheckpoint
	g := *goer.Load()
	g.Cancel()
	(*resume.Load())()

	select {
	case status := <-caught:
		assert.Equal(t, EventCancelled, status)
	case <-time.After(time.Second):
		t.Fatal("cancellation was never delivered")
	}
}

func TestEventsGuard_SuppressesThenDelivers(t *testing.T) {
	newTestPool(t, 1, "default")

	result := make(chan EventStatus, 1)
	noPanicDuringGuard := make(chan bool, 1)
	Go(func() {
		defer func() {
			if r := recover(); r != nil {
				result <- r.(*EventException).Status
			}
		}()

		guard := NewEventsGuard()
		g := Current().GoerHandle()
		g.Cancel()
		noPanicDuringGuard <- true // reached with the event latched but suppressed
		guard.Close()              // delivers the latched cancellation
	})

	select {
	case ok := <-noPanicDuringGuard:
		assert.True(t, ok, "events must not fire while the guard is open")
	case <-time.After(time.Second):
		t.Fatal("guard body never ran")
	}
	select {
	case status := <-result:
		assert.Equal(t, EventCancelled, status)
	case <-time.After(time.Second):
		t.Fatal("closing the guard never delivered the latched event")
	}
}

func TestCurrent_PanicsOutsideJourney(t *testing.T) {
	assert.Panics(t, func() { Current() })
	assert.Nil(t, CurrentOrNil())
}

func TestWaitForAllJourneys(t *testing.T) {
	newTestPool(t, 4, "default")
	const n = 25
	var count atomic.Int64
	GoN(n, func() { count.Add(1) })
	WaitForAllJourneys()
	assert.EqualValues(t, n, count.Load())
}
