package eventbus

import (
	"Subscribr/internal/core/domain"
	"Subscribr/internal/core/ports"
	"context"

	"github.com/rs/zerolog"
)

// NewFailureReporter returns an error handler that logs every listener failure
// and forwards it to each sink. Sink errors are logged and dropped.
func NewFailureReporter(baseLogger *zerolog.Logger, sinks ...ports.FailureSink) ports.ErrorHandler {
	log := baseLogger.With().Str("component", "failure_reporter").Logger()

	return func(ctx context.Context, err error, eventName string, event *domain.Event, data any) {
		failure := domain.NewListenerFailure(err, eventName, event)

		log.Error().
			Err(err).
			Str("event", eventName).
			Str("binding_id", failure.BindingID).
			Bool("panic", failure.Panicked).
			Msg("Event listener failed")

		for _, sink := range sinks {
			if sinkErr := sink.Record(ctx, failure); sinkErr != nil {
				log.Warn().Err(sinkErr).Str("failure_id", failure.ID.String()).Msg("Failure sink rejected record")
			}
		}
	}
}
