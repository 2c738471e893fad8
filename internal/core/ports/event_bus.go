package ports

import (
	"Subscribr/internal/core/domain"
	"context"
)

// ErrorHandler receives every listener failure of a publish call.
// err is a *domain.ListenerError.
type ErrorHandler func(ctx context.Context, err error, eventName string, event *domain.Event, data any)

// EventBus defines the interface for our in-process pub/sub system
type EventBus interface {
	// Subscribe registers a listener for an event name and returns its handle.
	Subscribe(eventName string, listener domain.Listener, opts ...SubscribeOption) (*domain.Subscription, error)

	// Unsubscribe removes exactly the registration behind sub.
	// It reports false when that registration is not (or no longer) present.
	Unsubscribe(sub *domain.Subscription) bool

	// Publish sends a default event named eventName to all of its listeners.
	Publish(ctx context.Context, eventName string, data any) error

	// PublishEvent is Publish with a caller-supplied event.
	PublishEvent(ctx context.Context, eventName string, event *domain.Event, data any) error

	// IsSubscribed reports whether the registration behind sub is still present.
	IsSubscribed(sub *domain.Subscription) bool

	// SetErrorHandler replaces the handler for listener failures.
	SetErrorHandler(handler ErrorHandler)

	// Destroy drops every registration.
	Destroy()
}

// SubscribeOptions holds per-subscription settings.
type SubscribeOptions struct {
	Receiver    any
	HasReceiver bool
	Once        bool
}

// SubscribeOption configures a single subscription.
type SubscribeOption func(*SubscribeOptions)

// WithReceiver binds the listener to receiver instead of to itself.
func WithReceiver(receiver any) SubscribeOption {
	return func(o *SubscribeOptions) {
		o.Receiver = receiver
		o.HasReceiver = true
	}
}

// WithOnce removes the subscription after its first invocation, whether or not
// that invocation failed.
func WithOnce() SubscribeOption {
	return func(o *SubscribeOptions) {
		o.Once = true
	}
}
