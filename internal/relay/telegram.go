package relay

import (
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const sendRetries = 3

// botSender is the slice of the Bot API the messenger needs.
type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramMessenger delivers session output through the Bot API with
// HTML parse mode. Send errors are logged, never fatal: a failed
// delivery must not stop event processing.
type TelegramMessenger struct {
	bot     botSender
	chatID  int64
	logger  *slog.Logger
	backoff time.Duration
}

func NewTelegramMessenger(bot *tgbotapi.BotAPI, chatID int64, logger *slog.Logger) *TelegramMessenger {
	if logger == nil {
		logger = slog.Default()
	}
	return &TelegramMessenger{bot: bot, chatID: chatID, logger: logger, backoff: time.Second}
}

func (t *TelegramMessenger) Send(text string) {
	t.Reply(t.chatID, text)
}

func (t *TelegramMessenger) Reply(chatID int64, text string) {
	var lastErr error
	for attempt := 0; attempt <= sendRetries; attempt++ {
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeHTML

		_, err := t.bot.Send(msg)
		if err == nil {
			return
		}
		lastErr = err

		if strings.Contains(err.Error(), "can't parse entities") {
			// Malformed HTML in relayed content; deliver it plain instead.
			plain := tgbotapi.NewMessage(chatID, text)
			if _, err2 := t.bot.Send(plain); err2 == nil {
				return
			}
		}

		if attempt < sendRetries {
			wait := time.Duration(attempt+1) * t.backoff
			if strings.Contains(err.Error(), "Too Many Requests") {
				wait *= 3
				t.logger.Warn("telegram rate limited, backing off", "retry_after", wait)
			}
			time.Sleep(wait)
		}
	}
	t.logger.Error("telegram send failed", "err", lastErr, "attempts", sendRetries+1)
}
