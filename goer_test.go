package synca

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoer_CancelFirstWriterWins(t *testing.T) {
	g := newGoer()
	assert.True(t, g.Cancel())
	assert.False(t, g.Cancel())
	assert.False(t, g.TimedOut())
	assert.Equal(t, EventCancelled, g.Peek())
}

func TestGoer_TimedOutFirstWriterWins(t *testing.T) {
	g := newGoer()
	assert.True(t, g.TimedOut())
	assert.False(t, g.TimedOut())
	assert.False(t, g.Cancel())
	assert.Equal(t, EventTimedOut, g.Peek())
}

func TestGoer_ResetReadsAndRearms(t *testing.T) {
	g := newGoer()
	assert.Equal(t, EventNormal, g.Reset())
	g.Cancel()
	assert.Equal(t, EventCancelled, g.Reset())
	assert.Equal(t, EventNormal, g.Peek())
}

func TestGoer_ConcurrentCancelTimedOutOnlyOneWins(t *testing.T) {
	for i := 0; i < 200; i++ {
		g := newGoer()
		var wg sync.WaitGroup
		results := make([]bool, 2)
		wg.Add(2)
		go func() { defer wg.Done(); results[0] = g.Cancel() }()
		go func() { defer wg.Done(); results[1] = g.TimedOut() }()
		wg.Wait()
		assert.True(t, results[0] != results[1], "exactly one writer should win")
		status := g.Peek()
		assert.True(t, status == EventCancelled || status == EventTimedOut)
	}
}

func TestGoer_IsACopyableHandle(t *testing.T) {
	g := newGoer()
	h := g
	h.Cancel()
	assert.Equal(t, EventCancelled, g.Peek(), "copies of a Goer share the same underlying state")
}
