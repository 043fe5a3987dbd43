package synca

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoroutine_StartResumeYield(t *testing.T) {
	c := NewCoroutine()
	require.False(t, c.IsStarted())

	var order []string
	c.Start(func() {
		order = append(order, "a")
		yieldCurrent()
		order = append(order, "b")
		yieldCurrent()
		order = append(order, "c")
	})
	assert.True(t, c.IsStarted())
	assert.Equal(t, []string{"a"}, order)

	c.Resume()
	assert.True(t, c.IsStarted())
	assert.Equal(t, []string{"a", "b"}, order)

	c.Resume()
	assert.False(t, c.IsStarted())
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestCoroutine_DoubleStartPanics(t *testing.T) {
	c := NewCoroutine()
	c.Start(func() { yieldCurrent() })
	defer c.Resume()

	assert.PanicsWithError(t, "synca: invariant violation: coroutine already started", func() {
		c.Start(func() {})
	})
}

func TestCoroutine_ResumeNotStartedPanics(t *testing.T) {
	c := NewCoroutine()
	assert.Panics(t, func() { c.Resume() })
}

func TestCoroutine_ResumeWhileRunningPanics(t *testing.T) {
	c := NewCoroutine()
	innerPanicked := make(chan any, 1)
	c.Start(func() {
		func() {
			defer func() { innerPanicked <- recover() }()
			c.Resume()
		}()
		yieldCurrent()
	})
	select {
	case r := <-innerPanicked:
		if iv, ok := r.(*InvariantViolation); ok {
			assert.Equal(t, "cannot resume: coroutine already running", iv.Message)
		} else {
			t.Fatalf("expected InvariantViolation, got %v", r)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for inner panic")
	}
	c.Resume()
}

func TestCoroutine_YieldOutsideCoroPanics(t *testing.T) {
	assert.Panics(t, func() { yieldCurrent() })
}

func TestCoroutine_PanicPropagatesToStart(t *testing.T) {
	c := NewCoroutine()
	assert.PanicsWithValue(t, "boom", func() {
		c.Start(func() { panic("boom") })
	})
}

func TestCoroutine_PanicDuringResumePropagates(t *testing.T) {
	c := NewCoroutine()
	c.Start(func() {
		yieldCurrent()
		panic("boom-on-resume")
	})
	assert.PanicsWithValue(t, "boom-on-resume", func() {
		c.Resume()
	})
}

func TestCoroutine_SingleRunnerAtOnce(t *testing.T) {
	c := NewCoroutine()
	running := make(chan struct{})
	done := make(chan struct{})
	c.Start(func() {
		close(running)
		yieldCurrent()
		close(done)
	})
	<-running
	c.Resume()
	<-done
}
