package notifier

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// CommandHandler is called when a user command is received and returns the
// reply text, or "" for no reply.
type CommandHandler func(command string) string

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegramNotifier creates a notifier for the given bot token and chat.
func NewTelegramNotifier(botToken, chatID string) (*TelegramNotifier, error) {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse chat id: %w", err)
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &TelegramNotifier{
		bot:    bot,
		chatID: id,
		logger: log.With().Str("component", "telegram").Logger(),
	}, nil
}

// Send sends a Markdown message to the configured chat.
func (t *TelegramNotifier) Send(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// SendStartupPing delivers the startup test message, retrying with
// exponential backoff. Scan-cycle sends are never retried; this runs once
// before the scheduler loop starts.
func (t *TelegramNotifier) SendStartupPing(ctx context.Context) error {
	backoffStrategy := backoff.NewExponentialBackOff()
	backoffStrategy.MaxElapsedTime = 30 * time.Second
	return backoff.Retry(func() error {
		return t.Send("✅ radar started")
	}, backoff.WithContext(backoffStrategy, ctx))
}

// ListenCommands long-polls for user commands and replies through the
// handler. Blocks until ctx is cancelled.
func (t *TelegramNotifier) ListenCommands(ctx context.Context, handler CommandHandler) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info().Msg("command listener stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			t.logger.Info().Str("command", update.Message.Text).Msg("received command")
			reply := handler(update.Message.Text)
			if reply == "" {
				continue
			}
			if err := t.Send(reply); err != nil {
				t.logger.Error().Err(err).Msg("send reply")
			}
		}
	}
}
