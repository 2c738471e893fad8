package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Event is the value handed to every listener of a publish call.
// Type carries the event name it was published under.
type Event struct {
	ID        uuid.UUID
	Type      string
	Timestamp time.Time
}

// NewEvent builds the default event for a publish call that did not supply one.
func NewEvent(eventName string) *Event {
	return &Event{
		ID:        uuid.New(),
		Type:      eventName,
		Timestamp: time.Now(),
	}
}

// ValidateEventName checks that an event name is usable as a registry key.
func ValidateEventName(eventName string) error {
	if eventName == "" {
		return fmt.Errorf("%w: event name must be a non-empty string", ErrInvalidArgument)
	}

	trimmed := strings.TrimFunc(eventName, unicode.IsSpace)
	if trimmed != eventName {
		return fmt.Errorf("%w: event name %q has leading or trailing whitespace", ErrMalformedArgument, eventName)
	}

	return nil
}
