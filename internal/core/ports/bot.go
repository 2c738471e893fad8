package ports

import (
	"context"
)

// SendMessageParams holds all possible options for sending a message.
type SendMessageParams struct {
	ChatID    int64
	Text      string
	ParseMode string // e.g., "MarkdownV2" or "HTML"
}

// BotClientPort defines the interface for *sending* messages.
type BotClientPort interface {
	SendMessage(ctx context.Context, params SendMessageParams) error
}

// BotUpdate represents a simplified, generic update.
// It is the payload of the telegram:* events published by the bridge.
type BotUpdate struct {
	UpdateID     int
	MessageID    int
	ChatID       int64
	UserID       int64
	Text         string
	Command      string
	CallbackData *string
}
