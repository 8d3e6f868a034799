package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg_guarantor/internal/transport/bot/handler"
	"tg_guarantor/pkg/contextx"
)

//nolint:gochecknoglobals
var logger = contextx.LoggerFromContextOrDefault

// Bot — обёртка над telego с long polling и маршрутизацией обновлений.
type Bot struct {
	bot        *telego.Bot
	botHandler *th.BotHandler

	handler *handler.Handler
}

// New создаёт бота и регистрирует маршруты.
func New(ctx context.Context, token string, h *handler.Handler) (*Bot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	updates, err := bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: 60,
	})
	if err != nil {
		return nil, fmt.Errorf("bot.UpdatesViaLongPolling: %w", err)
	}

	botHandler, err := th.NewBotHandler(bot, updates)
	if err != nil {
		return nil, fmt.Errorf("th.NewBotHandler: %w", err)
	}

	h.RegisterRoutes(botHandler)

	return &Bot{
		bot:        bot,
		botHandler: botHandler,
		handler:    h,
	}, nil
}

// Telego отдаёт низкоуровневый клиент для отправки сообщений вне
// цикла обновлений (обработчики очереди, вотчер напоминаний).
func (b *Bot) Telego() *telego.Bot {
	return b.bot
}

// Run обрабатывает обновления до отмены контекста.
func (b *Bot) Run(ctx context.Context) error {
	go func() {
		if err := b.botHandler.Start(); err != nil {
			logger(ctx).Error("bot handler start failed", "error", err)
		}
	}()

	logger(ctx).Info("bot started")

	<-ctx.Done()

	if err := b.botHandler.Stop(); err != nil {
		logger(ctx).Error("bot handler stop failed", "error", err)
	}

	logger(ctx).Info("bot stopped")

	return ctx.Err()
}
