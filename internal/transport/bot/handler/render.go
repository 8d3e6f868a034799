package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"tg_guarantor/internal/domain/entity"
	"tg_guarantor/internal/transport/bot/view"
)

func (h *Handler) messagesFor(ctx context.Context, userID int64) view.Messages {
	language, err := h.users.Language(ctx, userID)
	if err != nil {
		logger(ctx).Warn("language lookup failed", "user_id", userID, "error", err)
	}

	return view.For(language)
}

func (h *Handler) send(ctx *th.Context, chatID int64, text string, keyboard telego.ReplyMarkup) error {
	params := &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeMarkdown,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	_, err := ctx.Bot().SendMessage(ctx, params)
	return err
}

// edit редактирует сообщение, к которому привязан callback. Если
// Telegram отклоняет правку (сообщение слишком старое или не наше),
// старое сообщение удаляется и отправляется новое.
func (h *Handler) edit(ctx *th.Context, query telego.CallbackQuery, text string, keyboard *telego.InlineKeyboardMarkup) error {
	_ = ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID))

	if query.Message == nil {
		return nil
	}

	chatID := query.Message.GetChat().ID
	messageID := query.Message.GetMessageID()

	_, err := ctx.Bot().EditMessageText(ctx, &telego.EditMessageTextParams{
		ChatID:      tu.ID(chatID),
		MessageID:   messageID,
		Text:        text,
		ParseMode:   telego.ModeMarkdown,
		ReplyMarkup: keyboard,
	})
	if err == nil {
		return nil
	}

	// "message is not modified" — пользователь нажал ту же кнопку.
	if strings.Contains(err.Error(), "message is not modified") {
		return nil
	}

	logger(ctx).Debug("edit failed, resending", "chat_id", chatID, "error", err)

	_ = ctx.Bot().DeleteMessage(ctx, &telego.DeleteMessageParams{
		ChatID:    tu.ID(chatID),
		MessageID: messageID,
	})

	return h.send(ctx, chatID, text, keyboard)
}

// alert показывает всплывающее уведомление поверх чата.
func (h *Handler) alert(ctx *th.Context, queryID, text string) error {
	return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(queryID).
		WithText(text).WithShowAlert())
}

func dealCreatedText(m view.Messages, deal *entity.Deal) string {
	return fmt.Sprintf(m.DealCreated,
		deal.ID,
		view.FormatAmount(deal.Amount), deal.FiatCurrency,
		view.FormatAmount(deal.TotalAmount), deal.FiatCurrency,
		strings.Join(deal.Items, "\n"),
		deal.ShareLink,
	)
}

func buyerDealInfoText(m view.Messages, deal *entity.Deal, sellerHandle string, sellerStats int) string {
	return fmt.Sprintf(m.BuyerDealInfo,
		deal.ID,
		sellerHandle, sellerStats,
		view.FormatAmount(deal.Amount), deal.FiatCurrency,
		view.FormatAmount(deal.TotalAmount), deal.FiatCurrency,
		strings.Join(deal.Items, "\n"),
		deal.PaymentAddress,
		view.FormatAmount(deal.TonAmount), view.FormatAmount(deal.UsdtAmount),
	)
}

// dealInfoText — карточка сделки из «моих сделок», текст зависит от
// роли смотрящего.
func (h *Handler) dealInfoText(ctx context.Context, m view.Messages, deal *entity.Deal, viewerID int64) string {
	if deal.SellerID == viewerID {
		counterpart := m.CounterpartNone
		if deal.BuyerID != nil {
			counterpart = fmt.Sprintf(m.CounterpartBuyer,
				h.userHandle(ctx, *deal.BuyerID), h.userStats(ctx, *deal.BuyerID))
		}

		return fmt.Sprintf(m.DealInfoSeller,
			deal.ID, counterpart,
			view.FormatAmount(deal.Amount), deal.FiatCurrency,
			view.FormatAmount(deal.TotalAmount), deal.FiatCurrency,
			strings.Join(deal.Items, "\n"),
		)
	}

	counterpart := fmt.Sprintf(m.CounterpartSeller,
		h.userHandle(ctx, deal.SellerID), h.userStats(ctx, deal.SellerID))

	return fmt.Sprintf(m.DealInfoBuyer,
		deal.ID, counterpart,
		view.FormatAmount(deal.Amount), deal.FiatCurrency,
		view.FormatAmount(deal.TotalAmount), deal.FiatCurrency,
		strings.Join(deal.Items, "\n"),
	)
}

func (h *Handler) userHandle(ctx context.Context, userID int64) string {
	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Sprintf("%d", userID)
	}
	return user.Handle()
}

func (h *Handler) userStats(ctx context.Context, userID int64) int {
	stats, err := h.deals.SellerStats(ctx, userID)
	if err != nil {
		return 0
	}
	return stats
}
