package synca

import "fmt"

// EventStatus is the latched state of a Goer.
type EventStatus int

const (
	// EventNormal is the default, unlatched state.
	EventNormal EventStatus = iota
	// EventCancelled is latched by Goer.Cancel.
	EventCancelled
	// EventTimedOut is latched by Goer.TimedOut.
	EventTimedOut
)

// String renders the status for diagnostics.
func (s EventStatus) String() string {
	switch s {
	case EventNormal:
		return "Normal"
	case EventCancelled:
		return "Cancelled"
	case EventTimedOut:
		return "TimedOut"
	default:
		return "Unknown"
	}
}

// EventException is panicked by HandleEvents when a Goer has latched a
// non-Normal status. User code may recover it and continue.
type EventException struct {
	Status EventStatus
}

// Error implements the error interface.
func (e *EventException) Error() string {
	return fmt.Sprintf("synca: event exception: %s", e.Status)
}

// InvariantViolation signals misuse of a core primitive: double-start,
// resume-while-running, yield-outside-coro, teleport with no scheduler
// attached, a negative wait count, and similar programmer errors. It is
// fatal to the journey that raises it.
type InvariantViolation struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *InvariantViolation) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("synca: invariant violation: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("synca: invariant violation: %s", e.Message)
}

// Unwrap returns the underlying cause, if any, for use with errors.Is/As.
func (e *InvariantViolation) Unwrap() error {
	return e.Cause
}

// WrapError wraps an error with a message, preserving the cause chain so
// errors.Is(result, cause) holds.
func WrapError(message string, cause error) error {
	return fmt.Errorf("%s: %w", message, cause)
}

// violate panics with a formatted InvariantViolation. Internal helper used
// throughout the package at misuse checkpoints.
func violate(format string, args ...any) {
	panic(&InvariantViolation{Message: fmt.Sprintf(format, args...)})
}
