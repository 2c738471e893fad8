package telegram

import (
	"Subscribr/internal/core/ports"
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

// MockBotClient is a mock for the BotClientPort
type MockBotClient struct {
	mock.Mock
}

func (m *MockBotClient) SendMessage(ctx context.Context, params ports.SendMessageParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

// MockSender is a mock for the Sender interface
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)
	return args.Get(0).(tgbotapi.Message), args.Error(1)
}

// fakeUpdateSource feeds updates from a channel the test controls.
type fakeUpdateSource struct {
	updates chan tgbotapi.Update
	config  tgbotapi.UpdateConfig
	stopped bool
}

func newFakeUpdateSource() *fakeUpdateSource {
	return &fakeUpdateSource{updates: make(chan tgbotapi.Update)}
}

func (f *fakeUpdateSource) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	f.config = config
	return f.updates
}

func (f *fakeUpdateSource) StopReceivingUpdates() {
	f.stopped = true
}
