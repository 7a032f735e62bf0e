package notifier

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	apperr "vintedwatch/pkg/errors"
)

// sender is the subset of the Telegram API the notifier needs.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier implements Notifier on the Telegram bot API
type TelegramNotifier struct {
	api sender
}

// NewTelegramNotifier creates a notifier from a bot token
func NewTelegramNotifier(token string) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, apperr.NewConfiguration("failed to create telegram api", err)
	}
	return &TelegramNotifier{api: api}, nil
}

// NewTelegramNotifierWithAPI creates a notifier around an existing API client
func NewTelegramNotifierWithAPI(api sender) *TelegramNotifier {
	return &TelegramNotifier{api: api}
}

// Notify delivers the text as one or more HTML messages, in order. Delivery
// stops at the first failed chunk.
func (n *TelegramNotifier) Notify(ctx context.Context, chatID int64, text string) error {
	for _, chunk := range SplitMessage(text, MaxMessageLength) {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg := tgbotapi.NewMessage(chatID, chunk)
		msg.ParseMode = tgbotapi.ModeHTML
		msg.DisableWebPagePreview = true

		if _, err := n.api.Send(msg); err != nil {
			return apperr.NewNotify("telegram", "failed to send message chunk", err)
		}
	}
	return nil
}
