package synca

import (
	"github.com/joeycumines/go-catrate"
)

// RateLimitedScheduler decorates a host Scheduler with a sliding-window rate
// limit, grounded on catrate.Limiter: tasks within budget are posted to the
// host immediately, and over-budget tasks are delayed (never rejected)
// until the limiter's reported next-allowed time, using the TimerService
// passed to NewRateLimitedScheduler.
type RateLimitedScheduler struct {
	name     string
	category any
	logger   Logger
	host     Scheduler
	limiter  *catrate.Limiter
	timers   TimerService
}

// NewRateLimitedScheduler wraps host with limiter, budgeting every task
// under a single category (see WithRateLimitedSchedulerCategory to
// customise it) and using timers to schedule delayed tasks.
func NewRateLimitedScheduler(host Scheduler, limiter *catrate.Limiter, timers TimerService, opts ...RateLimitedSchedulerOption) *RateLimitedScheduler {
	if host == nil {
		violate("newratelimitedscheduler: host scheduler must not be nil")
	}
	if limiter == nil {
		violate("newratelimitedscheduler: limiter must not be nil")
	}
	if timers == nil {
		violate("newratelimitedscheduler: timer service must not be nil")
	}
	cfg := resolveRateLimitedSchedulerOptions(opts)
	name := cfg.name
	if name == "" {
		name = "ratelimited(" + host.Name() + ")"
	}
	category := cfg.category
	if category == "" {
		category = name
	}
	return &RateLimitedScheduler{
		name:     name,
		category: category,
		logger:   cfg.logger,
		host:     host,
		limiter:  limiter,
		timers:   timers,
	}
}

// Name returns the decorator's diagnostic label.
func (r *RateLimitedScheduler) Name() string { return r.name }

// Schedule posts task to the host scheduler immediately if the limiter's
// budget allows it, otherwise arms a timer for the limiter-reported
// next-allowed instant and re-attempts then. A task may be delayed more
// than once if the budget is still exhausted when the timer fires.
func (r *RateLimitedScheduler) Schedule(task func()) error {
	return r.attempt(task)
}

func (r *RateLimitedScheduler) attempt(task func()) error {
	if next, ok := r.limiter.Allow(r.category); ok {
		return r.host.Schedule(task)
	} else {
		d := next.Sub(timeNow())
		if d < 0 {
			d = 0
		}
		r.timers.After(d, func() {
			if err := r.attempt(task); err != nil {
				r.logger.Errorf("synca: rate limited scheduler %q: delayed retry failed: %v", r.name, err)
			}
		})
		return nil
	}
}
