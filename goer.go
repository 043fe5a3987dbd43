package synca

import "sync"

// goerState is the shared cell backing a Goer. It is reached from the owning
// journey, external cancellers, and any active Timeout, which may all be on
// different goroutines, so access is mutex-guarded.
type goerState struct {
	mu     sync.Mutex
	status EventStatus
}

// Goer is a cheap, copyable handle over a shared event-status cell. It
// mirrors a task's cancellation/timeout state: Normal, Cancelled, or
// TimedOut. The zero Goer is not usable; obtain one from Journey.GoerHandle
// or the return value of Go/GoOn.
type Goer struct {
	state *goerState
}

// newGoer allocates a fresh Goer in state Normal.
func newGoer() Goer {
	return Goer{state: &goerState{}}
}

// Cancel attempts the Normal->Cancelled transition. It returns true if this
// call performed the transition (first writer wins); false if the cell was
// already non-Normal.
func (g Goer) Cancel() bool {
	return g.setStatus(EventCancelled)
}

// TimedOut attempts the Normal->TimedOut transition. It returns true if this
// call performed the transition (first writer wins); false if the cell was
// already non-Normal.
func (g Goer) TimedOut() bool {
	return g.setStatus(EventTimedOut)
}

func (g Goer) setStatus(s EventStatus) bool {
	g.state.mu.Lock()
	defer g.state.mu.Unlock()
	if g.state.status != EventNormal {
		return false
	}
	g.state.status = s
	return true
}

// Reset reads the latched status and re-arms the cell to Normal, atomically
// with respect to concurrent Cancel/TimedOut calls.
func (g Goer) Reset() EventStatus {
	g.state.mu.Lock()
	defer g.state.mu.Unlock()
	s := g.state.status
	g.state.status = EventNormal
	return s
}

// Peek reads the latched status without resetting it. Useful for
// diagnostics; ordinary event delivery should use Reset via HandleEvents.
func (g Goer) Peek() EventStatus {
	g.state.mu.Lock()
	defer g.state.mu.Unlock()
	return g.state.status
}
