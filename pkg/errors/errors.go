// Package errors provides structured error handling for the motion engine.
//
// Configuration and state errors are returned to the caller as *Error values
// that wrap a package-level sentinel, so callers can match them with Is.
// Failures that happen while an animation is ticking are never returned;
// they are sent to the global ErrorHandler through Report so that one broken
// frame does not stop a live animation.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindConfig indicates malformed configuration rejected at the boundary.
	KindConfig
	// KindState indicates an operation that is invalid in the current state.
	KindState
	// KindApply indicates the apply collaborator failed to write a value.
	KindApply
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindState:
		return "state"
	case KindApply:
		return "apply"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Error represents a structured engine error.
type Error struct {
	// Op is the operation that failed (e.g., "animation.Start").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Err is the underlying error.
	Err error
	// Property is the animated property involved, if any.
	Property string
	// Timestamp is when the error was reported. Set by Report.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("%s [%s] property=%s: %v", e.Op, e.Kind, e.Property, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "animation.Scheduler.Step").
	Op string
	// Value is the value passed to panic().
	Value any
	// Frame is the tick time of the frame that panicked, if known.
	Frame time.Time
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported while animations run.
type ErrorHandler interface {
	// HandleError is called when a runtime error occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Config returns a configuration error for op.
func Config(op string, err error) *Error {
	return &Error{Op: op, Kind: KindConfig, Err: err}
}

// State returns a state error for op.
func State(op string, err error) *Error {
	return &Error{Op: op, Kind: KindState, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// New returns an error with the given text.
func New(text string) error { return stderrors.New(text) }

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }

// Join returns an error that wraps the given errors, ignoring nils.
func Join(errs ...error) error { return stderrors.Join(errs...) }
