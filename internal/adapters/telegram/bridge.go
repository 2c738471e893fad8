package telegram

import (
	"Subscribr/internal/core/ports"
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Event names published by the bridge.
const (
	TopicCommand     = "telegram:command"
	TopicCallback    = "telegram:callback"
	TopicMessage     = "telegram:message"
	TopicChannelPost = "telegram:channel_post"
)

// UpdateSource is the part of *tgbotapi.BotAPI the bridge polls.
type UpdateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bridge long-polls Telegram and publishes every update onto the event bus.
type Bridge struct {
	source  UpdateSource
	bus     ports.EventBus
	timeout int
	log     zerolog.Logger
}

// NewBridge creates a new bridge. timeout is the long polling timeout in seconds.
func NewBridge(source UpdateSource, bus ports.EventBus, timeout int, baseLogger *zerolog.Logger) *Bridge {
	return &Bridge{
		source:  source,
		bus:     bus,
		timeout: timeout,
		log:     baseLogger.With().Str("component", "tg_bridge").Logger(),
	}
}

// Start polls for updates until ctx is cancelled. Updates are published one at
// a time, so listeners see them in the order Telegram delivered them.
func (b *Bridge) Start(ctx context.Context) error {
	b.log.Info().Int("timeout", b.timeout).Msg("Starting bridge in POLLING mode")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.timeout
	updates := b.source.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.source.StopReceivingUpdates()
			b.log.Info().Msg("Polling stopped gracefully")
			return nil
		case update, ok := <-updates:
			if !ok {
				b.log.Info().Msg("Update channel closed")
				return nil
			}
			if err := b.HandleUpdate(ctx, &update); err != nil {
				b.log.Error().Err(err).Int("update_id", update.UpdateID).Msg("Failed to publish update")
			}
		}
	}
}

// HandleUpdate publishes a single update under its telegram:* event name.
func (b *Bridge) HandleUpdate(ctx context.Context, update *tgbotapi.Update) error {
	if update.ChannelPost != nil {
		// Channel posts keep the raw update; consumers need photos and captions.
		return b.bus.Publish(ctx, TopicChannelPost, *update)
	}

	botUpdate, isSupported := b.parseUpdate(update)
	if !isSupported {
		b.log.Warn().Int("update_id", update.UpdateID).Msg("Received unsupported update type")
		return nil
	}

	topic := TopicMessage
	switch {
	case botUpdate.CallbackData != nil:
		topic = TopicCallback
	case botUpdate.Command != "":
		topic = TopicCommand
	}

	b.log.Debug().
		Str("topic", topic).
		Int64("user_id", botUpdate.UserID).
		Int64("chat_id", botUpdate.ChatID).
		Msg("Publishing update")
	return b.bus.Publish(ctx, topic, botUpdate)
}

// parseUpdate converts a tgbotapi.Update into our internal, simplified struct.
func (b *Bridge) parseUpdate(update *tgbotapi.Update) (*ports.BotUpdate, bool) {
	if update.CallbackQuery != nil {
		cb := update.CallbackQuery
		botUpdate := &ports.BotUpdate{
			UpdateID:     update.UpdateID,
			CallbackData: &cb.Data,
		}
		if cb.From != nil {
			botUpdate.UserID = cb.From.ID
		}
		// Callbacks from inline messages carry no message.
		if cb.Message != nil {
			botUpdate.MessageID = cb.Message.MessageID
			if cb.Message.Chat != nil {
				botUpdate.ChatID = cb.Message.Chat.ID
			}
		}
		return botUpdate, true
	}

	if update.Message != nil {
		msg := update.Message
		botUpdate := &ports.BotUpdate{
			UpdateID:  update.UpdateID,
			MessageID: msg.MessageID,
			Text:      msg.Text,
			Command:   msg.Command(),
		}
		if msg.From != nil {
			botUpdate.UserID = msg.From.ID
		}
		if msg.Chat != nil {
			botUpdate.ChatID = msg.Chat.ID
		}
		return botUpdate, true
	}

	return nil, false // Unsupported update
}
