package synca

import (
	"runtime"
	"sync"
)

// getGoroutineID returns the calling goroutine's runtime ID by parsing the
// header line of runtime.Stack. It's the same trick used by event loops that
// need to verify "am I running on the right goroutine" without a language-level
// thread-local.
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] >= '0' && buf[i] <= '9' {
			id = id*10 + uint64(buf[i]-'0')
		} else {
			break
		}
	}
	return id
}

// coroutineRegistry and journeyRegistry stand in for thread-local "current
// coroutine" / "current journey" pointers, which Go does not provide.
// Each is keyed by the runtime goroutine ID of a coroutine's dedicated backing
// goroutine, which is bound once when that goroutine starts and unbound when
// it exits for good.
type coroutineRegistry struct {
	mu   sync.RWMutex
	byID map[uint64]*Coroutine
}

func newCoroutineRegistry() *coroutineRegistry {
	return &coroutineRegistry{byID: make(map[uint64]*Coroutine)}
}

func (r *coroutineRegistry) bind(id uint64, c *Coroutine) {
	r.mu.Lock()
	r.byID[id] = c
	r.mu.Unlock()
}

func (r *coroutineRegistry) unbind(id uint64) {
	r.mu.Lock()
	delete(r.byID, id)
	r.mu.Unlock()
}

func (r *coroutineRegistry) lookup(id uint64) (*Coroutine, bool) {
	r.mu.RLock()
	c, ok := r.byID[id]
	r.mu.RUnlock()
	return c, ok
}

var coroutines = newCoroutineRegistry()

type journeyRegistry struct {
	mu   sync.RWMutex
	byID map[uint64]*Journey
}

func newJourneyRegistry() *journeyRegistry {
	return &journeyRegistry{byID: make(map[uint64]*Journey)}
}

func (r *journeyRegistry) bind(id uint64, j *Journey) {
	r.mu.Lock()
	r.byID[id] = j
	r.mu.Unlock()
}

func (r *journeyRegistry) unbind(id uint64) {
	r.mu.Lock()
	delete(r.byID, id)
	r.mu.Unlock()
}

func (r *journeyRegistry) lookup(id uint64) (*Journey, bool) {
	r.mu.RLock()
	j, ok := r.byID[id]
	r.mu.RUnlock()
	return j, ok
}

var journeys = newJourneyRegistry()
