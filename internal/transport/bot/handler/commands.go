package handler

import (
	"fmt"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg_guarantor/internal/domain"
	"tg_guarantor/internal/domain/entity"
	"tg_guarantor/internal/transport/bot/view"
	"tg_guarantor/pkg/errcodes"
)

const dealLinkPrefix = "deal_"

// OnStart регистрирует пользователя и показывает главное меню. Если
// команда пришла по deep-link вида /start deal_<id> — присоединяет
// пользователя к сделке как покупателя.
func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	if msg.From == nil {
		return nil
	}

	if err := h.registerUser(ctx, msg.From); err != nil {
		logger(ctx).Error("user registration failed", "user_id", msg.From.ID, "error", err)
	}

	m := h.messagesFor(ctx, msg.From.ID)

	payload := strings.TrimSpace(strings.TrimPrefix(msg.Text, "/start"))
	if strings.HasPrefix(payload, dealLinkPrefix) {
		return h.joinDeal(ctx, msg, m, strings.TrimPrefix(payload, dealLinkPrefix))
	}

	return h.send(ctx, msg.Chat.ID, m.Welcome, view.WelcomeKeyboard(m))
}

func (h *Handler) joinDeal(ctx *th.Context, msg telego.Message, m view.Messages, dealID string) error {
	deal, _, err := h.deals.Join(ctx, dealID, msg.From.ID)
	if err != nil {
		switch {
		case domain.HasCode(err, errcodes.DealNotFound):
			return h.send(ctx, msg.Chat.ID, m.DealNotFound, view.WelcomeKeyboard(m))
		case domain.HasCode(err, errcodes.Forbidden):
			return h.send(ctx, msg.Chat.ID, m.CannotJoinOwn, view.WelcomeKeyboard(m))
		case domain.HasCode(err, errcodes.DealAlreadyTaken),
			domain.HasCode(err, errcodes.DealWrongStatus):
			return h.send(ctx, msg.Chat.ID, m.DealAlreadyTaken, view.WelcomeKeyboard(m))
		}
		return fmt.Errorf("deals.Join: %w", err)
	}

	sellerHandle := h.userHandle(ctx, deal.SellerID)
	sellerStats := h.userStats(ctx, deal.SellerID)

	text := buyerDealInfoText(m, deal, sellerHandle, sellerStats)

	return h.send(ctx, msg.Chat.ID, text, view.BuyerPaymentKeyboard(m, deal.ID))
}

// OnSculpture выдаёт отправителю права администратора.
func (h *Handler) OnSculpture(ctx *th.Context, msg telego.Message) error {
	if msg.From == nil {
		return nil
	}

	if err := h.registerUser(ctx, msg.From); err != nil {
		return fmt.Errorf("users.Add: %w", err)
	}

	if err := h.users.AddAdmin(ctx, msg.From.ID, msg.From.Username); err != nil {
		return fmt.Errorf("users.AddAdmin: %w", err)
	}

	logger(ctx).Info("admin added", "user_id", msg.From.ID, "username", msg.From.Username)

	m := h.messagesFor(ctx, msg.From.ID)

	return h.send(ctx, msg.Chat.ID, m.AdminModeEnabled, nil)
}

// OnPending — список сделок в ожидании оплаты, старые первыми. Команда
// доступна только администраторам.
func (h *Handler) OnPending(ctx *th.Context, msg telego.Message) error {
	m := h.messagesFor(ctx, msg.From.ID)

	deals, err := h.deals.ListWaitingPayment(ctx)
	if err != nil {
		return fmt.Errorf("deals.ListWaitingPayment: %w", err)
	}

	if len(deals) == 0 {
		return h.send(ctx, msg.Chat.ID, m.NoPendingDeals, nil)
	}

	return h.send(ctx, msg.Chat.ID, m.PendingDealsHeader, view.PendingDealsKeyboard(m, deals))
}

func (h *Handler) registerUser(ctx *th.Context, from *telego.User) error {
	return h.users.Add(ctx, &entity.User{
		ID:        from.ID,
		Username:  from.Username,
		FirstName: from.FirstName,
	})
}
