package notifier

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram sends backup outcome messages to a chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(botToken, chatID string) (*Telegram, error) {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid telegram chat id %q: %w", chatID, err)
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Telegram{bot: bot, chatID: id}, nil
}

func (t *Telegram) NotifySuccess(ctx context.Context, filename string, size int64) error {
	message := fmt.Sprintf(
		"✅ Backup Created\n\n"+
			"📁 File: %s\n"+
			"📊 Size: %.2f MB",
		filename,
		float64(size)/(1024*1024),
	)

	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, message)); err != nil {
		return fmt.Errorf("failed to send telegram notification: %w", err)
	}

	return nil
}

func (t *Telegram) NotifyFailure(ctx context.Context, cause error) error {
	message := fmt.Sprintf("❌ Backup Failed\n\n%v", cause)

	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, message)); err != nil {
		return fmt.Errorf("failed to send telegram notification: %w", err)
	}

	return nil
}
