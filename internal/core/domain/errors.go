package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when an event name is empty or a listener is nil.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformedArgument is returned when an event name has surrounding whitespace.
	ErrMalformedArgument = errors.New("malformed argument")

	// ErrListenerFailure matches every ListenerError.
	ErrListenerFailure = errors.New("listener failure")
)

// ListenerError describes one listener that failed during a publish call.
// It is reported to the error handler, never returned to the publisher.
type ListenerError struct {
	EventName string
	BindingID string

	// Err is the error the listener returned, or a synthesized one for a panic.
	Err error

	// Panic holds the recovered value when the listener panicked.
	Panic any
	Stack string
}

func (e *ListenerError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("listener %s for %q panicked: %v", e.BindingID, e.EventName, e.Panic)
	}
	return fmt.Sprintf("listener %s for %q failed: %v", e.BindingID, e.EventName, e.Err)
}

func (e *ListenerError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match any ListenerError against ErrListenerFailure.
func (e *ListenerError) Is(target error) bool {
	return target == ErrListenerFailure
}

// Panicked reports whether the failure came from a recovered panic.
func (e *ListenerError) Panicked() bool {
	return e.Panic != nil
}
