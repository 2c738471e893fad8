package telegram

import (
	"Subscribr/internal/core/domain"
	"Subscribr/internal/core/ports"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// maxAlertMessage keeps alerts well under Telegram's 4096 character limit.
const maxAlertMessage = 1000

// alertSink implements ports.FailureSink by messaging an operator chat.
type alertSink struct {
	client ports.BotClientPort
	chatID int64
	log    zerolog.Logger
}

var _ ports.FailureSink = (*alertSink)(nil) // Ensure compliance

// NewAlertSink creates a sink that reports listener failures to chatID.
func NewAlertSink(client ports.BotClientPort, chatID int64, baseLogger *zerolog.Logger) ports.FailureSink {
	return &alertSink{
		client: client,
		chatID: chatID,
		log:    baseLogger.With().Str("component", "tg_alert_sink").Logger(),
	}
}

// Record sends one alert per failure.
func (s *alertSink) Record(ctx context.Context, failure *domain.ListenerFailure) error {
	params := ports.SendMessageParams{
		ChatID: s.chatID,
		Text:   formatAlert(failure),
	}

	if err := s.client.SendMessage(ctx, params); err != nil {
		s.log.Error().Err(err).Str("failure_id", failure.ID.String()).Msg("Failed to send failure alert")
		return fmt.Errorf("could not send failure alert: %w", err)
	}
	return nil
}

// formatAlert renders a failure as plain text.
func formatAlert(failure *domain.ListenerFailure) string {
	kind := "failed"
	if failure.Panicked {
		kind = "panicked"
	}

	message := failure.Message
	if len(message) > maxAlertMessage {
		message = message[:maxAlertMessage] + "…"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Listener %s on %q\n", kind, failure.EventName)
	if failure.BindingID != "" {
		fmt.Fprintf(&sb, "Binding: %s\n", failure.BindingID)
	}
	fmt.Fprintf(&sb, "At: %s\n", failure.OccurredAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Error: %s", message)
	return sb.String()
}
