package synca

// timerServiceOptions holds configuration for NewTimerService.
type timerServiceOptions struct {
	logger Logger
}

// TimerServiceOption configures a TimerService constructed by
// NewTimerService, following the same functional-options shape used
// throughout this package for ThreadPool, Strand, and RateLimitedScheduler.
type TimerServiceOption interface {
	applyTimerService(*timerServiceOptions)
}

type timerServiceOptionFunc func(*timerServiceOptions)

func (f timerServiceOptionFunc) applyTimerService(o *timerServiceOptions) { f(o) }

// WithTimerServiceLogger overrides the logger used to report panics from
// timer callbacks. Defaults to the package-wide logger.
func WithTimerServiceLogger(l Logger) TimerServiceOption {
	return timerServiceOptionFunc(func(o *timerServiceOptions) { o.logger = l })
}

func resolveTimerServiceOptions(opts []TimerServiceOption) timerServiceOptions {
	cfg := timerServiceOptions{logger: currentLogger()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyTimerService(&cfg)
	}
	return cfg
}

// threadPoolOptions holds configuration for NewThreadPool.
type threadPoolOptions struct {
	name    string
	logger  Logger
	onPanic func(any)
}

// ThreadPoolOption configures a ThreadPool constructed by NewThreadPool.
type ThreadPoolOption interface {
	applyThreadPool(*threadPoolOptions)
}

type threadPoolOptionFunc func(*threadPoolOptions)

func (f threadPoolOptionFunc) applyThreadPool(o *threadPoolOptions) { f(o) }

// WithThreadPoolName sets the pool's Name(), used in logging and in tests
// distinguishing schedulers.
func WithThreadPoolName(name string) ThreadPoolOption {
	return threadPoolOptionFunc(func(o *threadPoolOptions) { o.name = name })
}

// WithThreadPoolLogger overrides the logger used to report a worker
// recovering a task panic. Defaults to the package-wide logger.
func WithThreadPoolLogger(l Logger) ThreadPoolOption {
	return threadPoolOptionFunc(func(o *threadPoolOptions) { o.logger = l })
}

// WithThreadPoolPanicHandler installs fn to be called, in addition to
// logging, whenever a scheduled task panics. Useful for tests that need to
// assert a task panicked without scraping log output.
func WithThreadPoolPanicHandler(fn func(any)) ThreadPoolOption {
	return threadPoolOptionFunc(func(o *threadPoolOptions) { o.onPanic = fn })
}

func resolveThreadPoolOptions(opts []ThreadPoolOption) threadPoolOptions {
	cfg := threadPoolOptions{logger: currentLogger()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyThreadPool(&cfg)
	}
	return cfg
}

// strandOptions holds configuration for NewStrand.
type strandOptions struct {
	name   string
	logger Logger
}

// StrandOption configures a Strand constructed by NewStrand.
type StrandOption interface {
	applyStrand(*strandOptions)
}

type strandOptionFunc func(*strandOptions)

func (f strandOptionFunc) applyStrand(o *strandOptions) { f(o) }

// WithStrandName sets the strand's Name().
func WithStrandName(name string) StrandOption {
	return strandOptionFunc(func(o *strandOptions) { o.name = name })
}

// WithStrandLogger overrides the logger used to report a drained task's
// panic. Defaults to the package-wide logger.
func WithStrandLogger(l Logger) StrandOption {
	return strandOptionFunc(func(o *strandOptions) { o.logger = l })
}

func resolveStrandOptions(opts []StrandOption) strandOptions {
	cfg := strandOptions{logger: currentLogger()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyStrand(&cfg)
	}
	return cfg
}

// rateLimitedSchedulerOptions holds configuration for
// NewRateLimitedScheduler.
type rateLimitedSchedulerOptions struct {
	name     string
	category string
	logger   Logger
}

// RateLimitedSchedulerOption configures a RateLimitedScheduler constructed
// by NewRateLimitedScheduler.
type RateLimitedSchedulerOption interface {
	applyRateLimitedScheduler(*rateLimitedSchedulerOptions)
}

type rateLimitedSchedulerOptionFunc func(*rateLimitedSchedulerOptions)

func (f rateLimitedSchedulerOptionFunc) applyRateLimitedScheduler(o *rateLimitedSchedulerOptions) {
	f(o)
}

// WithRateLimitedSchedulerName sets the decorator's Name().
func WithRateLimitedSchedulerName(name string) RateLimitedSchedulerOption {
	return rateLimitedSchedulerOptionFunc(func(o *rateLimitedSchedulerOptions) { o.name = name })
}

// WithRateLimitedSchedulerCategory sets the rate-limiter category key tasks
// are budgeted under. Defaults to the scheduler's name.
func WithRateLimitedSchedulerCategory(category string) RateLimitedSchedulerOption {
	return rateLimitedSchedulerOptionFunc(func(o *rateLimitedSchedulerOptions) { o.category = category })
}

// WithRateLimitedSchedulerLogger overrides the logger used to report a
// delayed task whose re-attempt the host scheduler rejects. Defaults to the
// package-wide logger.
func WithRateLimitedSchedulerLogger(l Logger) RateLimitedSchedulerOption {
	return rateLimitedSchedulerOptionFunc(func(o *rateLimitedSchedulerOptions) { o.logger = l })
}

func resolveRateLimitedSchedulerOptions(opts []RateLimitedSchedulerOption) rateLimitedSchedulerOptions {
	cfg := rateLimitedSchedulerOptions{logger: currentLogger()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyRateLimitedScheduler(&cfg)
	}
	if cfg.category == "" {
		cfg.category = cfg.name
	}
	return cfg
}
