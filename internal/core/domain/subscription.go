package domain

// Subscription is the handle returned by a subscribe call. It addresses exactly
// one registration; unsubscribing and status checks go through the registry
// that issued it.
type Subscription struct {
	eventName string
	binding   *Binding
}

// NewSubscription wraps an event name and the binding registered under it.
func NewSubscription(eventName string, binding *Binding) *Subscription {
	return &Subscription{eventName: eventName, binding: binding}
}

// EventName returns the event name the subscription was made for.
func (s *Subscription) EventName() string {
	return s.eventName
}

// Binding returns the registered binding.
func (s *Subscription) Binding() *Binding {
	return s.binding
}

func (s *Subscription) String() string {
	return "Subscription(" + s.eventName + ", " + s.binding.String() + ")"
}
