package synca

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the package-wide logging seam. Schedulers and the timer service
// log through whatever was installed via SetLogger when they were
// constructed (unless a logger option overrides it), defaulting to a plain
// stderr writer.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

var globalLogger atomic.Pointer[Logger]

func init() {
	var l Logger = NewWriterLogger(os.Stderr)
	globalLogger.Store(&l)
}

// SetLogger installs l as the package-wide logger. A nil l is rejected;
// install NewNoopLogger() instead to silence logging.
func SetLogger(l Logger) {
	if l == nil {
		violate("setlogger: logger must not be nil")
	}
	globalLogger.Store(&l)
}

// currentLogger returns the installed package-wide logger.
func currentLogger() Logger {
	return *globalLogger.Load()
}

// WriterLogger is a minimal Logger writing plain leveled lines to an
// io.Writer. It is the default sink; use NewLogifaceLogger for structured
// JSON output.
type WriterLogger struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriterLogger constructs a WriterLogger writing to out.
func NewWriterLogger(out io.Writer) *WriterLogger {
	return &WriterLogger{out: out}
}

func (l *WriterLogger) logf(level string, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[%s] %s\n", level, fmt.Sprintf(format, args...))
}

func (l *WriterLogger) Debugf(format string, args ...any) { l.logf("DEBUG", format, args...) }
func (l *WriterLogger) Infof(format string, args ...any)  { l.logf("INFO", format, args...) }
func (l *WriterLogger) Warnf(format string, args ...any)  { l.logf("WARN", format, args...) }
func (l *WriterLogger) Errorf(format string, args ...any) { l.logf("ERROR", format, args...) }

// NoopLogger discards everything logged to it.
type NoopLogger struct{}

// NewNoopLogger constructs a Logger that discards all messages.
func NewNoopLogger() *NoopLogger { return &NoopLogger{} }

func (NoopLogger) Debugf(string, ...any) {}
func (NoopLogger) Infof(string, ...any)  {}
func (NoopLogger) Warnf(string, ...any)  {}
func (NoopLogger) Errorf(string, ...any) {}

// logifaceLogger adapts a structured *logiface.Logger[*stumpy.Event] (the
// stumpy backend's zero-allocation JSON event) to this package's Logger
// seam, so installations that already use logiface elsewhere in a host
// application can plug it in as the scheduler's logger too.
type logifaceLogger struct {
	l *logiface.Logger[*stumpy.Event]
}

// NewLogifaceLogger adapts l, a stumpy-backed logiface logger, to the
// Logger interface. Pass the result to SetLogger.
func NewLogifaceLogger(l *logiface.Logger[*stumpy.Event]) Logger {
	return &logifaceLogger{l: l}
}

func (a *logifaceLogger) Debugf(format string, args ...any) {
	a.l.Debug().Log(fmt.Sprintf(format, args...))
}

func (a *logifaceLogger) Infof(format string, args ...any) {
	a.l.Info().Log(fmt.Sprintf(format, args...))
}

func (a *logifaceLogger) Warnf(format string, args ...any) {
	a.l.Warning().Log(fmt.Sprintf(format, args...))
}

func (a *logifaceLogger) Errorf(format string, args ...any) {
	a.l.Err().Log(fmt.Sprintf(format, args...))
}

// NewDefaultStumpyLogger constructs a ready-to-use logiface/stumpy logger
// writing newline-delimited JSON to out, suitable for passing to
// NewLogifaceLogger.
func NewDefaultStumpyLogger(out io.Writer) *logiface.Logger[*stumpy.Event] {
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(out)),
	)
}
