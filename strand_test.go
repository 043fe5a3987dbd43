package synca

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrand_SerializesAcrossMultipleWorkers(t *testing.T) {
	pool := NewThreadPool(8, WithThreadPoolName("host"))
	defer func() { pool.Stop(); pool.Join() }()
	strand := NewStrand(pool, WithStrandName("serial"))

	var inFlight atomic.Int32
	var maxSeen atomic.Int32
	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup

	const n = 50
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		require.NoError(t, strand.Schedule(func() {
			cur := inFlight.Add(1)
			for {
				prev := maxSeen.Load()
				if cur <= prev || maxSeen.CompareAndSwap(prev, cur) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			inFlight.Add(-1)
			wg.Done()
		}))
	}
	wg.Wait()

	assert.LessOrEqual(t, maxSeen.Load(), int32(1), "at most one strand task should run at a time")
	expected := make([]int, n)
	for i := range expected {
		expected[i] = i
	}
	assert.Equal(t, expected, order)
}

func TestStrand_Name(t *testing.T) {
	pool := NewThreadPool(1)
	defer func() { pool.Stop(); pool.Join() }()

	named := NewStrand(pool, WithStrandName("custom"))
	assert.Equal(t, "custom", named.Name())

	unnamed := NewStrand(pool)
	assert.Equal(t, "strand("+pool.Name()+")", unnamed.Name())
}

func TestStrand_PanicIsolatedPerTask(t *testing.T) {
	pool := NewThreadPool(1)
	defer func() { pool.Stop(); pool.Join() }()
	strand := NewStrand(pool)

	done := make(chan struct{})
	require.NoError(t, strand.Schedule(func() { panic("boom") }))
	require.NoError(t, strand.Schedule(func() { close(done) }))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("strand stalled after a panicking task")
	}
}

func TestStrand_NewWithNilHostPanics(t *testing.T) {
	assert.Panics(t, func() { NewStrand(nil) })
}
