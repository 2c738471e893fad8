package domain

import (
	"context"

	"github.com/google/uuid"
)

// Listener is called for every publish of the event name it was subscribed to.
// receiver is the value the subscription was bound to.
type Listener func(ctx context.Context, receiver any, event *Event, data any) error

// Binding pairs a receiver with a listener. Each subscribe call creates its own
// Binding, and registries match bindings by pointer, never by their fields.
type Binding struct {
	id       uuid.UUID
	receiver any
	listener Listener
}

// NewBinding creates a new, distinct binding.
func NewBinding(receiver any, listener Listener) *Binding {
	return &Binding{
		id:       uuid.New(),
		receiver: receiver,
		listener: listener,
	}
}

// ID is a diagnostic identifier. It plays no part in registry membership.
func (b *Binding) ID() uuid.UUID {
	return b.id
}

// Receiver returns the bound receiver.
func (b *Binding) Receiver() any {
	return b.receiver
}

// Handle calls the listener with the bound receiver. Errors and panics are left
// to the caller.
func (b *Binding) Handle(ctx context.Context, event *Event, data any) error {
	return b.listener(ctx, b.receiver, event, data)
}

func (b *Binding) String() string {
	return "Binding(" + b.id.String() + ")"
}
