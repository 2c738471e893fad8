package postgres

import (
	"Subscribr/internal/core/domain"
	"Subscribr/internal/core/ports"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type failureRepository struct {
	db  *DB
	log zerolog.Logger
}

var _ ports.FailureRepository = (*failureRepository)(nil) // Ensure compliance

// NewFailureRepository creates the journal of listener failures.
func NewFailureRepository(db *DB, baseLogger *zerolog.Logger) ports.FailureRepository {
	return &failureRepository{
		db:  db,
		log: baseLogger.With().Str("component", "failure_repo").Logger(),
	}
}

// Record inserts one failure.
func (r *failureRepository) Record(ctx context.Context, failure *domain.ListenerFailure) error {
	query := `
		INSERT INTO listener_failures (
			id, event_id, event_name, binding_id, message, panicked, occurred_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	// uuid.Nil means the event was unknown; store NULL.
	var eventID *uuid.UUID
	if failure.EventID != uuid.Nil {
		eventID = &failure.EventID
	}

	_, err := r.db.pool.Exec(ctx, query,
		failure.ID,
		eventID,
		failure.EventName,
		failure.BindingID,
		failure.Message,
		failure.Panicked,
		failure.OccurredAt,
	)
	if err != nil {
		r.log.Error().Err(err).Str("event", failure.EventName).Msg("Failed to insert listener failure")
		return fmt.Errorf("could not record listener failure: %w", err)
	}
	return nil
}

// ListByEvent returns up to limit failures for eventName, newest first.
func (r *failureRepository) ListByEvent(ctx context.Context, eventName string, limit int) ([]*domain.ListenerFailure, error) {
	query := `
		SELECT id, event_id, event_name, binding_id, message, panicked, occurred_at
		FROM listener_failures
		WHERE event_name = $1
		ORDER BY occurred_at DESC
		LIMIT $2
	`

	rows, err := r.db.pool.Query(ctx, query, eventName, limit)
	if err != nil {
		r.log.Error().Err(err).Str("event", eventName).Msg("Failed to query listener failures")
		return nil, err
	}

	failures, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.ListenerFailure, error) {
		var (
			f       domain.ListenerFailure
			eventID *uuid.UUID
		)
		if err := row.Scan(&f.ID, &eventID, &f.EventName, &f.BindingID, &f.Message, &f.Panicked, &f.OccurredAt); err != nil {
			return nil, err
		}
		if eventID != nil {
			f.EventID = *eventID
		}
		return &f, nil
	})
	if err != nil {
		r.log.Error().Err(err).Str("event", eventName).Msg("Failed to scan listener failures")
		return nil, err
	}

	return failures, nil
}
