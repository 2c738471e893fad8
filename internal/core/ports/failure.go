package ports

import (
	"Subscribr/internal/core/domain"
	"context"
)

// FailureSink receives listener failure records (journal, operator alerts).
type FailureSink interface {
	Record(ctx context.Context, failure *domain.ListenerFailure) error
}

// FailureRepository is a FailureSink that can also be queried.
type FailureRepository interface {
	FailureSink

	// ListByEvent returns the newest failures for an event name, newest first.
	ListByEvent(ctx context.Context, eventName string, limit int) ([]*domain.ListenerFailure, error)
}
