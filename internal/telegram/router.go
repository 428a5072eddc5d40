package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Handler consumes inbound (recipient, text) pairs.
type Handler interface {
	HandleMessage(ctx context.Context, recipient, text string)
}

// Router adapts Telegram updates to the conversation handler and
// implements the outbound Sender on the way back.
type Router struct {
	bot *tgbotapi.BotAPI
	log *zap.Logger
	h   Handler
}

// NewRouter creates a new Telegram router.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, h Handler) *Router {
	return &Router{bot: bot, log: log, h: h}
}

// Recipient derives the opaque recipient address for a chat.
func Recipient(chatID int64) string {
	return "tg:" + strconv.FormatInt(chatID, 10)
}

func chatIDFrom(recipient string) (int64, error) {
	s := strings.TrimPrefix(recipient, "tg:")
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad recipient %q: %w", recipient, err)
	}
	return id, nil
}

// HandleUpdate routes a single update. Only plain text messages matter;
// everything else is ignored.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	text := strings.TrimSpace(upd.Message.Text)
	if text == "" {
		return
	}

	// Transport-level aliases for the bot commands Telegram clients send.
	switch text {
	case "/start":
		text = "hello"
	case "/help":
		text = "help"
	}

	r.h.HandleMessage(ctx, Recipient(upd.Message.Chat.ID), text)
}

// Send delivers a plain text message; satisfies assistant.Sender.
func (r *Router) Send(recipient, text string) error {
	chatID, err := chatIDFrom(recipient)
	if err != nil {
		return err
	}
	_, err = r.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
