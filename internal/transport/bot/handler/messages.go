package handler

import (
	"fmt"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg_guarantor/internal/domain"
	"tg_guarantor/internal/domain/service/session"
	"tg_guarantor/internal/transport/bot/view"
	"tg_guarantor/pkg/errcodes"
)

// OnText — текстовый ввод мастеров: позиции сделки, сумма, кошелёк,
// номер карты. Этап определяется сессией пользователя.
func (h *Handler) OnText(ctx *th.Context, msg telego.Message) error {
	if msg.From == nil || strings.HasPrefix(msg.Text, "/") {
		return nil
	}

	userID := msg.From.ID
	m := h.messagesFor(ctx, userID)

	switch h.sessions.Stage(userID) {
	case session.StageEnteringItems:
		return h.onItemsInput(ctx, msg, m)
	case session.StageEnteringAmount:
		return h.onAmountInput(ctx, msg, m)
	case session.StageEnteringWallet:
		return h.onWalletInput(ctx, msg, m)
	case session.StageEnteringCardNumber:
		return h.onCardInput(ctx, msg, m)
	case session.StageEditingCardNumber:
		return h.onCardEditInput(ctx, msg, m)
	default:
		return h.send(ctx, msg.Chat.ID, m.UseMenu, view.WelcomeKeyboard(m))
	}
}

func (h *Handler) onItemsInput(ctx *th.Context, msg telego.Message, m view.Messages) error {
	if err := h.sessions.SubmitItems(msg.From.ID, msg.Text); err != nil {
		if domain.HasCode(err, errcodes.InvalidItems) {
			return h.send(ctx, msg.Chat.ID, m.InvalidItems, nil)
		}
		return h.sessionError(ctx, msg.Chat.ID, m, err)
	}

	return h.send(ctx, msg.Chat.ID, m.ChooseCurrency, view.CurrencyKeyboard(m))
}

func (h *Handler) onAmountInput(ctx *th.Context, msg telego.Message, m view.Messages) error {
	if err := h.sessions.SubmitAmount(msg.From.ID, msg.Text); err != nil {
		if domain.HasCode(err, errcodes.InvalidAmount) {
			return h.send(ctx, msg.Chat.ID, m.InvalidAmount, nil)
		}
		return h.sessionError(ctx, msg.Chat.ID, m, err)
	}

	return h.send(ctx, msg.Chat.ID, m.WarningMessage, view.WarningKeyboard(m))
}

func (h *Handler) onWalletInput(ctx *th.Context, msg telego.Message, m view.Messages) error {
	wallet, err := h.sessions.SubmitWallet(msg.From.ID, msg.Text)
	if err != nil {
		if domain.HasCode(err, errcodes.InvalidWallet) {
			return h.send(ctx, msg.Chat.ID, m.WalletInvalid, view.BackToRequisitesKeyboard(m))
		}
		return h.sessionError(ctx, msg.Chat.ID, m, err)
	}

	if err := h.requisites.SetWallet(ctx, msg.From.ID, wallet); err != nil {
		return fmt.Errorf("requisites.SetWallet: %w", err)
	}

	text := fmt.Sprintf(m.WalletSaved, wallet)

	return h.send(ctx, msg.Chat.ID, text, view.ViewRequisitesKeyboard(m))
}

func (h *Handler) onCardInput(ctx *th.Context, msg telego.Message, m view.Messages) error {
	number, currency, err := h.sessions.SubmitCardNumber(msg.From.ID, msg.Text)
	if err != nil {
		if domain.HasCode(err, errcodes.InvalidCardNumber) {
			return h.send(ctx, msg.Chat.ID, m.CardInvalid, view.BackToRequisitesKeyboard(m))
		}
		return h.sessionError(ctx, msg.Chat.ID, m, err)
	}

	if _, err := h.requisites.AddCard(ctx, msg.From.ID, number, currency); err != nil {
		return fmt.Errorf("requisites.AddCard: %w", err)
	}

	text := fmt.Sprintf(m.CardSaved, number)

	return h.send(ctx, msg.Chat.ID, text, view.ViewRequisitesKeyboard(m))
}

func (h *Handler) onCardEditInput(ctx *th.Context, msg telego.Message, m view.Messages) error {
	cardID, number, err := h.sessions.SubmitCardEdit(msg.From.ID, msg.Text)
	if err != nil {
		if domain.HasCode(err, errcodes.InvalidCardNumber) {
			return h.send(ctx, msg.Chat.ID, m.CardInvalid, view.BackToRequisitesKeyboard(m))
		}
		return h.sessionError(ctx, msg.Chat.ID, m, err)
	}

	if err := h.requisites.UpdateCardNumber(ctx, msg.From.ID, cardID, number); err != nil {
		if domain.HasCode(err, errcodes.CardNotFound) {
			return h.send(ctx, msg.Chat.ID, m.GenericError, view.BackToRequisitesKeyboard(m))
		}
		return fmt.Errorf("requisites.UpdateCardNumber: %w", err)
	}

	text := fmt.Sprintf(m.CardUpdated, number)

	return h.send(ctx, msg.Chat.ID, text, view.ViewRequisitesKeyboard(m))
}

// sessionError — сессия истекла или ввод пришёл не на том этапе.
func (h *Handler) sessionError(ctx *th.Context, chatID int64, m view.Messages, err error) error {
	if domain.HasCode(err, errcodes.SessionNotFound) || domain.HasCode(err, errcodes.SessionWrongStep) {
		return h.send(ctx, chatID, m.SessionExpired, view.WelcomeKeyboard(m))
	}
	return err
}
