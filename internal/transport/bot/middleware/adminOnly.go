package middleware

import (
	"context"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg_guarantor/pkg/contextx"
)

//nolint:gochecknoglobals
var logger = contextx.LoggerFromContextOrDefault

// AdminChecker — проверка прав по таблице администраторов.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// AdminOnly пропускает обновление дальше, только если отправитель —
// администратор. Остальные обновления молча игнорируются.
func AdminOnly(users AdminChecker) th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		var userID int64

		switch {
		case update.Message != nil:
			userID = update.Message.From.ID
		case update.CallbackQuery != nil:
			userID = update.CallbackQuery.From.ID
		default:
			return nil
		}

		isAdmin, err := users.IsAdmin(ctx, userID)
		if err != nil {
			logger(ctx).Error("admin check failed", "user_id", userID, "error", err)
			return nil
		}

		if isAdmin {
			return ctx.Next(update)
		}

		return nil
	}
}
