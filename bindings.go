package synca

import (
	"reflect"
	"sync"
)

// SchedulerBinding is a process-wide, tag-addressed slot holding at most one
// Scheduler: each distinct Tag type parameter passed to SchedulerTag or
// PortalTag addresses its own binding.
type SchedulerBinding struct {
	mu sync.RWMutex
	s  Scheduler
}

// Attach binds s to this tag, replacing any previous binding.
func (b *SchedulerBinding) Attach(s Scheduler) {
	b.mu.Lock()
	b.s = s
	b.mu.Unlock()
}

// Detach clears the binding. Mainly useful for tests that reset global state
// between runs.
func (b *SchedulerBinding) Detach() {
	b.mu.Lock()
	b.s = nil
	b.mu.Unlock()
}

// Get returns the bound scheduler, panicking with an InvariantViolation if
// nothing has been attached yet.
func (b *SchedulerBinding) Get() Scheduler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.s == nil {
		violate("no scheduler attached for this tag")
	}
	return b.s
}

// Attached reports whether a scheduler is currently bound, without panicking.
func (b *SchedulerBinding) Attached() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.s != nil
}

// Enter teleports the current journey to this binding's scheduler, returning
// a closure that teleports back to the scheduler that was current on entry.
// It is the building block behind PortalTag/InPortal.
func (b *SchedulerBinding) Enter() func() {
	dest := b.Get()
	return Portal(dest)
}

var (
	schedulerBindingsMu sync.Mutex
	schedulerBindings   = map[reflect.Type]*SchedulerBinding{}

	portalBindingsMu sync.Mutex
	portalBindings   = map[reflect.Type]*SchedulerBinding{}
)

// SchedulerTag returns the process-wide SchedulerBinding for Tag, creating it
// on first use.
func SchedulerTag[Tag any]() *SchedulerBinding {
	return bindingFor[Tag](&schedulerBindingsMu, schedulerBindings)
}

// PortalTag returns the process-wide SchedulerBinding used as a Portal's home
// scheduler for Tag. It is a distinct namespace from SchedulerTag: a type may
// be both a scheduler tag and a portal tag with different bound schedulers.
func PortalTag[Tag any]() *SchedulerBinding {
	return bindingFor[Tag](&portalBindingsMu, portalBindings)
}

func bindingFor[Tag any](mu *sync.Mutex, table map[reflect.Type]*SchedulerBinding) *SchedulerBinding {
	t := reflect.TypeFor[Tag]()
	mu.Lock()
	defer mu.Unlock()
	b, ok := table[t]
	if !ok {
		b = &SchedulerBinding{}
		table[t] = b
	}
	return b
}

// ServiceBinding is the TimerService analogue of SchedulerBinding.
type ServiceBinding struct {
	mu sync.RWMutex
	ts TimerService
}

// Attach binds ts to this tag, replacing any previous binding.
func (b *ServiceBinding) Attach(ts TimerService) {
	b.mu.Lock()
	b.ts = ts
	b.mu.Unlock()
}

// Detach clears the binding.
func (b *ServiceBinding) Detach() {
	b.mu.Lock()
	b.ts = nil
	b.mu.Unlock()
}

// Get returns the bound TimerService, panicking with an InvariantViolation if
// nothing has been attached yet.
func (b *ServiceBinding) Get() TimerService {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.ts == nil {
		violate("no timer service attached for this tag")
	}
	return b.ts
}

var (
	serviceBindingsMu sync.Mutex
	serviceBindings   = map[reflect.Type]*ServiceBinding{}
)

// ServiceTag returns the process-wide ServiceBinding for Tag, creating it on
// first use.
func ServiceTag[Tag any]() *ServiceBinding {
	t := reflect.TypeFor[Tag]()
	serviceBindingsMu.Lock()
	defer serviceBindingsMu.Unlock()
	b, ok := serviceBindings[t]
	if !ok {
		b = &ServiceBinding{}
		serviceBindings[t] = b
	}
	return b
}

// ResetRegistries clears every SchedulerTag/PortalTag/ServiceTag binding. It
// exists for tests that need a clean process-wide registry between runs;
// production setups attach once before any task runs and never reset.
func ResetRegistries() {
	schedulerBindingsMu.Lock()
	schedulerBindings = map[reflect.Type]*SchedulerBinding{}
	schedulerBindingsMu.Unlock()

	portalBindingsMu.Lock()
	portalBindings = map[reflect.Type]*SchedulerBinding{}
	portalBindingsMu.Unlock()

	serviceBindingsMu.Lock()
	serviceBindings = map[reflect.Type]*ServiceBinding{}
	serviceBindingsMu.Unlock()
}
