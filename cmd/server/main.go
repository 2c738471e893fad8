package main

import (
	"Subscribr/internal/adapters/eventbus"
	"Subscribr/internal/adapters/postgres"
	"Subscribr/internal/adapters/telegram"
	"Subscribr/internal/core/domain"
	"Subscribr/internal/core/ports"
	"Subscribr/internal/shared/config"
	"Subscribr/internal/shared/logger"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

const eventAppStarted = "app:started"

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	baseLogger := logger.New(cfg.IsDev(), cfg.LogLevel)
	baseLogger.Info().
		Str("app_env", cfg.AppEnv).
		Bool("journal", cfg.Postgres.URL != "").
		Bool("alerts", cfg.Telegram.AlertChatID != 0).
		Bool("bridge", cfg.Telegram.Bridge.Enabled).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Initialize the event bus
	bus := eventbus.NewSubscribr(&baseLogger)
	defer bus.Destroy()

	// 4. Failure sinks
	var sinks []ports.FailureSink

	if cfg.Postgres.URL != "" {
		db, err := postgres.NewDB(ctx, cfg.Postgres.URL, &baseLogger)
		if err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer db.Close()

		if err := db.EnsureSchema(ctx); err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to prepare failure journal")
		}
		sinks = append(sinks, postgres.NewFailureRepository(db, &baseLogger))
	}

	var api *tgbotapi.BotAPI
	if cfg.Telegram.Token != "" {
		api, err = tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to create Telegram bot API")
		}
		baseLogger.Info().Str("bot", api.Self.UserName).Msg("Telegram bot authorized")

		if cfg.Telegram.AlertChatID != 0 {
			client := telegram.NewClient(api, &baseLogger)
			sinks = append(sinks, telegram.NewAlertSink(client, cfg.Telegram.AlertChatID, &baseLogger))
		}
	}

	bus.SetErrorHandler(eventbus.NewFailureReporter(&baseLogger, sinks...))

	// 5. Built-in listeners
	if err := registerListeners(bus, &baseLogger); err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to register listeners")
	}

	if err := bus.Publish(ctx, eventAppStarted, cfg.AppEnv); err != nil {
		baseLogger.Error().Err(err).Msg("Failed to publish startup event")
	}

	// 6. Run the bridge, or just wait for a shutdown signal
	if cfg.Telegram.Bridge.Enabled {
		bridge := telegram.NewBridge(api, bus, cfg.Telegram.Bridge.Timeout, &baseLogger)
		if err := bridge.Start(ctx); err != nil {
			baseLogger.Error().Err(err).Msg("Bridge stopped with error")
		}
	} else {
		baseLogger.Info().Msg("Bridge disabled; waiting for shutdown signal")
		<-ctx.Done()
	}

	baseLogger.Info().Strs("events", bus.EventNames()).Msg("Shutting down")
}

// registerListeners subscribes the listeners every deployment runs.
func registerListeners(bus *eventbus.Subscribr, baseLogger *zerolog.Logger) error {
	log := baseLogger.With().Str("component", "listeners").Logger()

	_, err := bus.Subscribe(eventAppStarted, func(ctx context.Context, receiver any, event *domain.Event, data any) error {
		log.Info().Str("event_id", event.ID.String()).Interface("env", data).Msg("Application started")
		return nil
	}, ports.WithOnce())
	if err != nil {
		return err
	}

	_, err = bus.Subscribe(telegram.TopicCommand, func(ctx context.Context, receiver any, event *domain.Event, data any) error {
		update, ok := data.(*ports.BotUpdate)
		if !ok {
			return fmt.Errorf("unexpected payload %T", data)
		}
		log.Info().
			Str("command", update.Command).
			Int64("user_id", update.UserID).
			Int64("chat_id", update.ChatID).
			Msg("Received command")
		return nil
	})
	return err
}
