package tasks

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/mymmrac/telego"

	"tg_guarantor/internal/transport/bot/view"
	"tg_guarantor/pkg/contextx"
)

//nolint:gochecknoglobals
var logger = contextx.LoggerFromContextOrDefault

// UserDirectory — язык получателя и список администраторов.
type UserDirectory interface {
	Language(ctx context.Context, userID int64) (string, error)
	ListAdmins(ctx context.Context) ([]int64, error)
}

// Handlers доставляет уведомления из очереди в Telegram.
type Handlers struct {
	bot   *telego.Bot
	users UserDirectory
}

func NewHandlers(bot *telego.Bot, users UserDirectory) *Handlers {
	return &Handlers{bot: bot, users: users}
}

// HandleBuyerJoined — продавцу о присоединившемся покупателе.
func (h *Handlers) HandleBuyerJoined(ctx context.Context, task *asynq.Task) error {
	var payload BuyerJoinedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal %s: %w", task.Type(), err)
	}

	m := h.messagesFor(ctx, payload.SellerID)
	text := fmt.Sprintf(m.BuyerJoined, payload.BuyerHandle, payload.BuyerStats)

	return h.send(ctx, payload.SellerID, text, nil)
}

// HandlePaymentConfirmed — обеим сторонам после подтверждения оплаты.
// Продавец получает кнопку «товар отправлен».
func (h *Handlers) HandlePaymentConfirmed(ctx context.Context, task *asynq.Task) error {
	var payload PaymentConfirmedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal %s: %w", task.Type(), err)
	}

	sellerMessages := h.messagesFor(ctx, payload.SellerID)
	sellerText := fmt.Sprintf(sellerMessages.SellerPaymentNotice, payload.DealID)
	if err := h.send(ctx, payload.SellerID, sellerText,
		view.SellerGiftSentKeyboard(sellerMessages, payload.DealID)); err != nil {
		return err
	}

	if payload.BuyerID == 0 {
		return nil
	}

	buyerMessages := h.messagesFor(ctx, payload.BuyerID)

	return h.send(ctx, payload.BuyerID, buyerMessages.PaymentConfirmed, nil)
}

// HandleGiftSent — покупателю после отметки продавца об отправке.
func (h *Handlers) HandleGiftSent(ctx context.Context, task *asynq.Task) error {
	var payload GiftSentPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal %s: %w", task.Type(), err)
	}

	if payload.BuyerID == 0 {
		return nil
	}

	m := h.messagesFor(ctx, payload.BuyerID)

	return h.send(ctx, payload.BuyerID, m.WaitingConfirmation, nil)
}

// HandlePaymentClaim — всем администраторам заявка об оплате с кнопкой
// подтверждения конкретной сделки.
func (h *Handlers) HandlePaymentClaim(ctx context.Context, task *asynq.Task) error {
	var payload PaymentClaimPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal %s: %w", task.Type(), err)
	}

	admins, err := h.users.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("users.ListAdmins: %w", err)
	}

	if len(admins) == 0 {
		logger(ctx).Warn("payment claim with no admins to notify", "deal_id", payload.DealID)
		return nil
	}

	var lastErr error
	for _, adminID := range admins {
		m := h.messagesFor(ctx, adminID)
		text := fmt.Sprintf(m.AdminPaymentClaim,
			payload.DealID, view.FormatAmount(payload.TotalAmount), payload.FiatCurrency,
			payload.BuyerHandle)

		if err := h.send(ctx, adminID, text, view.AdminConfirmKeyboard(m, payload.DealID)); err != nil {
			logger(ctx).Error("admin notify failed", "admin_id", adminID, "error", err)
			lastErr = err
		}
	}

	return lastErr
}

func (h *Handlers) messagesFor(ctx context.Context, userID int64) view.Messages {
	language, err := h.users.Language(ctx, userID)
	if err != nil {
		logger(ctx).Warn("language lookup failed", "user_id", userID, "error", err)
	}

	return view.For(language)
}

func (h *Handlers) send(ctx context.Context, chatID int64, text string, keyboard *telego.InlineKeyboardMarkup) error {
	params := &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeMarkdown,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	if _, err := h.bot.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	return nil
}
