package synca

import "sync"

// gcList is a Journey's task-local list of cleanup closures, run in LIFO
// order when the journey is torn down. Go's own garbage collector reclaims
// memory, so this is not a manual-memory mechanism; what it provides is
// deterministic, ordered cleanup at journey end (closing files,
// unregistering callbacks, and similar).
type gcList struct {
	mu       sync.Mutex
	cleanups []func()
}

func newGCList() *gcList {
	return &gcList{}
}

func (g *gcList) add(cleanup func()) {
	g.mu.Lock()
	g.cleanups = append(g.cleanups, cleanup)
	g.mu.Unlock()
}

func (g *gcList) runAll() {
	g.mu.Lock()
	cleanups := g.cleanups
	g.cleanups = nil
	g.mu.Unlock()
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

// GCRegister registers cleanup to run, in LIFO order with any other
// registered cleanups, when the current journey is torn down.
func GCRegister(cleanup func()) {
	Current().gc.add(cleanup)
}

// GCNew allocates a *T holding v, registers it on the current journey's GC
// list, and returns it. If *T has a Close() method with no results, that
// method is registered as the cleanup (a Close() error method, as in
// io.Closer, does not qualify); otherwise GCNew behaves like
// GCRegister with a no-op cleanup, existing purely to tie the allocation's
// scope to the journey for documentation purposes.
func GCNew[T any](v T) *T {
	p := new(T)
	*p = v
	j := Current()
	if closer, ok := any(p).(interface{ Close() }); ok {
		j.gc.add(closer.Close)
	} else {
		j.gc.add(func() {})
	}
	return p
}
