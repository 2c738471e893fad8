package eventbus

import (
	"Subscribr/internal/core/domain"
	"Subscribr/internal/core/ports"
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// bindingSet keeps the bindings of one event name in insertion order.
type bindingSet struct {
	order   []*domain.Binding
	members map[*domain.Binding]struct{}
}

func newBindingSet() *bindingSet {
	return &bindingSet{members: make(map[*domain.Binding]struct{})}
}

func (s *bindingSet) add(b *domain.Binding) {
	s.members[b] = struct{}{}
	s.order = append(s.order, b)
}

func (s *bindingSet) has(b *domain.Binding) bool {
	_, ok := s.members[b]
	return ok
}

func (s *bindingSet) remove(b *domain.Binding) bool {
	if !s.has(b) {
		return false
	}
	delete(s.members, b)
	for i, member := range s.order {
		if member == b {
			// Fresh slice so snapshots taken by running publishes stay intact.
			order := make([]*domain.Binding, 0, len(s.order)-1)
			order = append(order, s.order[:i]...)
			s.order = append(order, s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *bindingSet) size() int {
	return len(s.order)
}

// Subscribr implements the ports.EventBus interface
type Subscribr struct {
	log          zerolog.Logger
	subscribers  map[string]*bindingSet
	errorHandler ports.ErrorHandler
	mu           sync.RWMutex
}

var _ ports.EventBus = (*Subscribr)(nil) // Ensure compliance

// NewSubscribr creates a new, empty event bus
func NewSubscribr(baseLogger *zerolog.Logger) *Subscribr {
	return &Subscribr{
		log:         baseLogger.With().Str("component", "subscribr").Logger(),
		subscribers: make(map[string]*bindingSet),
	}
}

// Subscribe registers a listener for eventName. Every call creates an
// independent registration, even for a listener that is already subscribed.
func (b *Subscribr) Subscribe(eventName string, listener domain.Listener, opts ...ports.SubscribeOption) (*domain.Subscription, error) {
	if err := domain.ValidateEventName(eventName); err != nil {
		return nil, err
	}
	if listener == nil {
		return nil, fmt.Errorf("%w: listener for %q is nil", domain.ErrInvalidArgument, eventName)
	}

	var options ports.SubscribeOptions
	for _, opt := range opts {
		opt(&options)
	}

	receiver := any(listener)
	if options.HasReceiver {
		receiver = options.Receiver
	}

	var sub *domain.Subscription
	if options.Once {
		sub = b.onceSubscription(eventName, receiver, listener)
	} else {
		sub = domain.NewSubscription(eventName, domain.NewBinding(receiver, listener))
	}

	b.mu.Lock()
	set, ok := b.subscribers[eventName]
	if !ok {
		set = newBindingSet()
		b.subscribers[eventName] = set
	}
	set.add(sub.Binding())
	b.mu.Unlock()

	b.log.Debug().
		Str("event", eventName).
		Str("binding_id", sub.Binding().ID().String()).
		Bool("once", options.Once).
		Msg("New listener subscribed")
	return sub, nil
}

// onceSubscription wraps listener so it runs at most once and then removes its
// own binding, even when it fails.
func (b *Subscribr) onceSubscription(eventName string, receiver any, listener domain.Listener) *domain.Subscription {
	var (
		fired atomic.Bool
		sub   *domain.Subscription
	)

	wrapped := func(ctx context.Context, receiver any, event *domain.Event, data any) error {
		if !fired.CompareAndSwap(false, true) {
			return nil
		}
		defer b.Unsubscribe(sub)
		return listener(ctx, receiver, event, data)
	}

	sub = domain.NewSubscription(eventName, domain.NewBinding(receiver, wrapped))
	return sub
}

// Unsubscribe removes the exact binding behind sub.
func (b *Subscribr) Unsubscribe(sub *domain.Subscription) bool {
	if sub == nil || sub.Binding() == nil {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.subscribers[sub.EventName()]
	if !ok {
		return false
	}

	removed := set.remove(sub.Binding())
	if removed && set.size() == 0 {
		delete(b.subscribers, sub.EventName())
	}
	return removed
}

// Publish sends a default event to all listeners of eventName.
func (b *Subscribr) Publish(ctx context.Context, eventName string, data any) error {
	return b.PublishEvent(ctx, eventName, nil, data)
}

// PublishEvent calls every listener registered for eventName when the call
// starts, in subscription order. Listener failures are reported, not returned.
func (b *Subscribr) PublishEvent(ctx context.Context, eventName string, event *domain.Event, data any) error {
	if err := domain.ValidateEventName(eventName); err != nil {
		return err
	}

	b.mu.RLock()
	set, ok := b.subscribers[eventName]
	if !ok {
		b.mu.RUnlock()
		return nil
	}
	snapshot := set.order
	b.mu.RUnlock()

	if event == nil {
		event = domain.NewEvent(eventName)
	}

	for _, binding := range snapshot {
		// A listener earlier in this publish may have removed it.
		if !b.isMember(eventName, binding) {
			continue
		}
		if err := b.invoke(ctx, eventName, binding, event, data); err != nil {
			b.reportFailure(ctx, err, eventName, event, data)
		}
	}

	b.log.Debug().Str("event", eventName).Int("listeners", len(snapshot)).Msg("Event published")
	return nil
}

// invoke runs a single binding, turning a returned error or a panic into a
// *domain.ListenerError.
func (b *Subscribr) invoke(ctx context.Context, eventName string, binding *domain.Binding, event *domain.Event, data any) (lerr *domain.ListenerError) {
	defer func() {
		if r := recover(); r != nil {
			lerr = &domain.ListenerError{
				EventName: eventName,
				BindingID: binding.ID().String(),
				Err:       fmt.Errorf("panic: %v", r),
				Panic:     r,
				Stack:     string(debug.Stack()),
			}
		}
	}()

	if err := binding.Handle(ctx, event, data); err != nil {
		return &domain.ListenerError{
			EventName: eventName,
			BindingID: binding.ID().String(),
			Err:       err,
		}
	}
	return nil
}

func (b *Subscribr) reportFailure(ctx context.Context, lerr *domain.ListenerError, eventName string, event *domain.Event, data any) {
	b.mu.RLock()
	handler := b.errorHandler
	b.mu.RUnlock()

	if handler == nil {
		b.log.Error().
			Err(lerr).
			Str("event", eventName).
			Str("binding_id", lerr.BindingID).
			Bool("panic", lerr.Panicked()).
			Msg("Event listener failed")
		return
	}

	defer func() {
		if r := recover(); r != nil {
			b.log.Error().
				Interface("panic", r).
				Str("event", eventName).
				Msg("Error handler panicked")
		}
	}()
	handler(ctx, lerr, eventName, event, data)
}

// IsSubscribed reports whether the binding behind sub is still registered.
func (b *Subscribr) IsSubscribed(sub *domain.Subscription) bool {
	if sub == nil || sub.Binding() == nil {
		return false
	}
	return b.isMember(sub.EventName(), sub.Binding())
}

func (b *Subscribr) isMember(eventName string, binding *domain.Binding) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	set, ok := b.subscribers[eventName]
	return ok && set.has(binding)
}

// SetErrorHandler replaces the listener failure handler. A nil handler
// restores logging through the bus logger.
func (b *Subscribr) SetErrorHandler(handler ports.ErrorHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errorHandler = handler
}

// Destroy drops every registration; outstanding subscriptions become stale.
func (b *Subscribr) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.log.Info().Int("events", len(b.subscribers)).Msg("Destroying event bus")
	b.subscribers = make(map[string]*bindingSet)
}

// ListenerCount returns the number of registrations for eventName.
func (b *Subscribr) ListenerCount(eventName string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if set, ok := b.subscribers[eventName]; ok {
		return set.size()
	}
	return 0
}

// EventNames returns the event names that currently have listeners, sorted.
func (b *Subscribr) EventNames() []string {
	b.mu.RLock()
	names := make([]string, 0, len(b.subscribers))
	for name := range b.subscribers {
		names = append(names, name)
	}
	b.mu.RUnlock()

	sort.Strings(names)
	return names
}

func (b *Subscribr) String() string {
	return "Subscribr"
}
