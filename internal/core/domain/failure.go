package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ListenerFailure is the record handed to failure sinks (journal, alerts).
type ListenerFailure struct {
	ID         uuid.UUID
	EventID    uuid.UUID
	EventName  string
	BindingID  string // Empty when the error did not come from a ListenerError
	Message    string
	Panicked   bool
	OccurredAt time.Time
}

// NewListenerFailure builds a failure record from a reported listener error.
func NewListenerFailure(err error, eventName string, event *Event) *ListenerFailure {
	failure := &ListenerFailure{
		ID:         uuid.New(),
		EventName:  eventName,
		Message:    err.Error(),
		OccurredAt: time.Now().UTC(),
	}

	if event != nil {
		failure.EventID = event.ID
	}

	var lerr *ListenerError
	if errors.As(err, &lerr) {
		failure.BindingID = lerr.BindingID
		failure.Panicked = lerr.Panicked()
	}

	return failure
}
