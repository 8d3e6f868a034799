package middleware

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg_guarantor/internal/transport/bot/view"
)

// LanguageResolver — язык пользователя для текста ошибки.
type LanguageResolver interface {
	Language(ctx context.Context, userID int64) (string, error)
}

// ErrorReply перехватывает ошибки и паники хендлеров: логирует и
// отвечает пользователю одним общим сообщением, не раскрывая деталей.
func ErrorReply(users LanguageResolver) th.Handler {
	return func(ctx *th.Context, update telego.Update) (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("handler panic: %v", p)
			}

			if err == nil {
				return
			}

			logger(ctx).Error("update handling failed", "error", err)
			replyGenericError(ctx, update, users)
			err = nil
		}()

		return ctx.Next(update)
	}
}

func replyGenericError(ctx *th.Context, update telego.Update, users LanguageResolver) {
	var chatID, userID int64

	switch {
	case update.Message != nil:
		chatID = update.Message.Chat.ID
		userID = update.Message.From.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		chatID = update.CallbackQuery.Message.GetChat().ID
		userID = update.CallbackQuery.From.ID
	default:
		return
	}

	language, lookupErr := users.Language(ctx, userID)
	if lookupErr != nil {
		language = ""
	}

	_, sendErr := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: chatID},
		Text:   view.For(language).GenericError,
	})
	if sendErr != nil {
		logger(ctx).Error("error reply failed", "chat_id", chatID, "error", sendErr)
	}
}
