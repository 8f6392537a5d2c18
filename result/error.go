package result

import (
	"runtime/debug"
)

// EngineError is the canonical failure kind produced by the execution
// engine. It carries the message shown in reports, the stack captured at
// the failure site, and the underlying cause when it wraps another error.
type EngineError struct {
	Message string
	Stack   []byte
	Cause   error
}

// NewEngineError creates an EngineError capturing the current stack.
func NewEngineError(message string) *EngineError {
	return &EngineError{
		Message: message,
		Stack:   debug.Stack(),
	}
}

// WrapEngineError creates an EngineError around a foreign error, capturing
// the current stack and keeping the original as cause.
func WrapEngineError(message string, cause error) *EngineError {
	return &EngineError{
		Message: message,
		Stack:   debug.Stack(),
		Cause:   cause,
	}
}

func (e *EngineError) Error() string {
	return e.Message
}

// Unwrap implements the errors.Unwrap interface.
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// StackTrace returns the stack captured when the error was created, or the
// stack copied from the error it contextualizes.
func (e *EngineError) StackTrace() []byte {
	return e.Stack
}
