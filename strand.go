package synca

import "sync"

// Strand is a serializing decorator over a host Scheduler: at most one task
// posted through a given Strand ever runs at a time, regardless of how many
// worker goroutines the host has. Dispatch works via a pending queue plus a
// single in-flight "drainer" posted to the host, which keeps pulling queued
// tasks until none remain.
type Strand struct {
	name   string
	logger Logger
	host   Scheduler

	mu       sync.Mutex
	queue    []func()
	draining bool
}

// NewStrand wraps host so that work scheduled through the returned Strand
// runs one task at a time, in submission order.
func NewStrand(host Scheduler, opts ...StrandOption) *Strand {
	if host == nil {
		violate("newstrand: host scheduler must not be nil")
	}
	cfg := resolveStrandOptions(opts)
	name := cfg.name
	if name == "" {
		name = "strand(" + host.Name() + ")"
	}
	return &Strand{name: name, logger: cfg.logger, host: host}
}

// Name returns the strand's diagnostic label.
func (s *Strand) Name() string { return s.name }

// Schedule enqueues task. If no drain is currently in flight, Schedule
// posts one to the host scheduler; the drain runs a single task, then
// re-posts itself to the host while tasks remain, so a long strand backlog
// shares the host's workers with the host's own queue instead of
// monopolizing one.
func (s *Strand) Schedule(task func()) error {
	s.mu.Lock()
	s.queue = append(s.queue, task)
	startDrain := !s.draining
	if startDrain {
		s.draining = true
	}
	s.mu.Unlock()

	if !startDrain {
		return nil
	}
	return s.host.Schedule(s.drain)
}

func (s *Strand) drain() {
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.draining = false
		s.mu.Unlock()
		return
	}
	task := s.queue[0]
	s.queue = s.queue[1:]
	s.mu.Unlock()

	s.runOne(task)

	s.mu.Lock()
	if len(s.queue) == 0 {
		s.draining = false
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	if err := s.host.Schedule(s.drain); err != nil {
		s.logger.Errorf("synca: strand %q: host rejected drain: %v", s.name, err)
		s.mu.Lock()
		s.draining = false
		s.mu.Unlock()
	}
}

func (s *Strand) runOne(task func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf("synca: strand %q: task panicked: %v", s.name, r)
		}
	}()
	task()
}
