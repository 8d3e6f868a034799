package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"tg_guarantor/internal/domain"
	"tg_guarantor/internal/domain/entity"
	"tg_guarantor/internal/transport/bot/view"
	"tg_guarantor/pkg/errcodes"
)

// callbackArg возвращает аргумент callback-данных вида "prefix:arg".
func callbackArg(data string) string {
	_, arg, _ := strings.Cut(data, ":")
	return arg
}

// ----- Главное меню -----

func (h *Handler) OnCreateDeal(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)
	h.sessions.BeginDeal(query.From.ID)

	return h.edit(ctx, query, m.ChooseDealType, view.DealTypeKeyboard(m))
}

func (h *Handler) OnProfile(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)

	stats, err := h.deals.SellerStats(ctx, query.From.ID)
	if err != nil {
		return fmt.Errorf("deals.SellerStats: %w", err)
	}

	return h.edit(ctx, query, fmt.Sprintf(m.ProfileInfo, stats), view.ProfileKeyboard(m))
}

func (h *Handler) OnSupport(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)
	_ = ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID))

	if query.Message == nil {
		return nil
	}

	return h.send(ctx, query.Message.GetChat().ID, m.SupportPrompt, view.SupportKeyboard(m, h.supportURL))
}

func (h *Handler) OnChangeLanguage(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)

	return h.edit(ctx, query, m.ChooseLanguage, view.LanguageKeyboard())
}

func (h *Handler) OnLanguage(ctx *th.Context, query telego.CallbackQuery) error {
	language := callbackArg(query.Data)
	if language != entity.LanguageRU && language != entity.LanguageEN {
		return nil
	}

	if err := h.users.SetLanguage(ctx, query.From.ID, language); err != nil {
		return fmt.Errorf("users.SetLanguage: %w", err)
	}

	m := view.For(language)

	return h.edit(ctx, query, m.Welcome, view.WelcomeKeyboard(m))
}

// ----- Мастер создания сделки -----

func (h *Handler) OnDealType(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)
	dealType := callbackArg(query.Data)

	if err := h.sessions.ChooseDealType(query.From.ID, dealType); err != nil {
		return h.callbackSessionError(ctx, query, m, err)
	}

	prompt := m.EnterGiftLinks
	switch entity.DealType(dealType) {
	case entity.DealTypeChannel:
		prompt = m.EnterChannelLink
	case entity.DealTypeUsername:
		prompt = m.EnterUsername
	case entity.DealTypePremium:
		prompt = m.EnterPremium
	case entity.DealTypeGift:
	}

	return h.edit(ctx, query, prompt, nil)
}

func (h *Handler) OnCurrency(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)
	currency := callbackArg(query.Data)

	needFiat, err := h.sessions.ChooseCurrency(query.From.ID, currency)
	if err != nil {
		return h.callbackSessionError(ctx, query, m, err)
	}

	if needFiat {
		return h.edit(ctx, query, m.ChooseFiat, view.FiatKeyboard(m))
	}

	prompt := fmt.Sprintf(m.EnterAmount, strings.ToUpper(currency))

	return h.edit(ctx, query, prompt, nil)
}

func (h *Handler) OnFiat(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)
	fiat := callbackArg(query.Data)

	if err := h.sessions.ChooseFiat(query.From.ID, fiat); err != nil {
		return h.callbackSessionError(ctx, query, m, err)
	}

	return h.edit(ctx, query, fmt.Sprintf(m.EnterAmount, fiat), nil)
}

// OnWarningRead завершает мастер: собирает черновик и создаёт сделку.
func (h *Handler) OnWarningRead(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)

	draft, err := h.sessions.Finalize(query.From.ID)
	if err != nil {
		return h.callbackSessionError(ctx, query, m, err)
	}

	deal, err := h.deals.Create(ctx, query.From.ID, draft)
	if err != nil {
		if domain.HasCode(err, errcodes.DealDraftIncomplete) ||
			domain.HasCode(err, errcodes.DealIDExhausted) {
			return h.alert(ctx, query.ID, m.GenericError)
		}
		return fmt.Errorf("deals.Create: %w", err)
	}

	return h.edit(ctx, query, dealCreatedText(m, deal), view.DealManagementKeyboard(m, deal.ShareLink))
}

// ----- Профиль и сделки -----

func (h *Handler) OnMyDeals(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)

	deals, err := h.deals.ListForUser(ctx, query.From.ID)
	if err != nil {
		return fmt.Errorf("deals.ListForUser: %w", err)
	}

	if len(deals) == 0 {
		return h.edit(ctx, query, m.MyDealsEmpty, view.ProfileKeyboard(m))
	}

	return h.edit(ctx, query, m.MyDealsHeader, view.DealsListKeyboard(m, deals))
}

func (h *Handler) OnDealInfo(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)

	deal, err := h.deals.Get(ctx, callbackArg(query.Data))
	if err != nil {
		if domain.HasCode(err, errcodes.DealNotFound) {
			return h.alert(ctx, query.ID, m.DealNotFound)
		}
		return fmt.Errorf("deals.Get: %w", err)
	}

	text := h.dealInfoText(ctx, m, deal, query.From.ID)

	return h.edit(ctx, query, text, view.DealInfoBackKeyboard(m))
}

// ----- Реквизиты -----

func (h *Handler) OnRequisites(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)
	return h.edit(ctx, query, m.RequisitesMenu, view.RequisitesMainKeyboard(m))
}

func (h *Handler) OnAddRequisites(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)
	return h.edit(ctx, query, m.RequisitesAddMenu, view.RequisitesAddKeyboard(m))
}

func (h *Handler) OnViewRequisites(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)
	return h.edit(ctx, query, m.RequisitesViewMenu, view.RequisitesViewKeyboard(m))
}

func (h *Handler) OnAddWallet(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)
	h.sessions.BeginWallet(query.From.ID)

	return h.edit(ctx, query, m.EnterWallet, view.BackToRequisitesKeyboard(m))
}

func (h *Handler) OnAddCard(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)
	return h.edit(ctx, query, m.ChooseCardCurrency, view.CardCurrencyKeyboard(m))
}

func (h *Handler) OnCardCurrency(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)
	currency := callbackArg(query.Data)

	h.sessions.BeginCard(query.From.ID, currency)

	return h.edit(ctx, query, fmt.Sprintf(m.EnterCardNumber, currency), view.BackToRequisitesKeyboard(m))
}

func (h *Handler) OnViewWallet(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)

	hasCustom, err := h.requisites.HasCustomWallet(ctx, query.From.ID)
	if err != nil {
		return fmt.Errorf("requisites.HasCustomWallet: %w", err)
	}

	if !hasCustom {
		return h.alert(ctx, query.ID, m.WalletNotSet)
	}

	wallet, err := h.requisites.Wallet(ctx, query.From.ID)
	if err != nil {
		return fmt.Errorf("requisites.Wallet: %w", err)
	}

	return h.edit(ctx, query, fmt.Sprintf(m.YourWallet, wallet), view.BackToRequisitesKeyboard(m))
}

func (h *Handler) OnViewCards(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)

	cards, err := h.requisites.ListCards(ctx, query.From.ID)
	if err != nil {
		return fmt.Errorf("requisites.ListCards: %w", err)
	}

	if len(cards) == 0 {
		return h.alert(ctx, query.ID, m.CardsEmpty)
	}

	return h.edit(ctx, query, m.CardsHeader, view.CardsListKeyboard(m, cards))
}

func (h *Handler) OnSelectCard(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)

	cardID, err := strconv.ParseInt(callbackArg(query.Data), 10, 64)
	if err != nil {
		return nil
	}

	card, err := h.requisites.GetCard(ctx, query.From.ID, cardID)
	if err != nil {
		if domain.HasCode(err, errcodes.CardNotFound) {
			return h.alert(ctx, query.ID, m.GenericError)
		}
		return fmt.Errorf("requisites.GetCard: %w", err)
	}

	text := fmt.Sprintf(m.SelectedCard, card.Currency, card.Masked())

	return h.edit(ctx, query, text, view.SelectedCardKeyboard(m, card.ID))
}

func (h *Handler) OnEditCard(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)

	cardID, err := strconv.ParseInt(callbackArg(query.Data), 10, 64)
	if err != nil {
		return nil
	}

	h.sessions.BeginCardEdit(query.From.ID, cardID)

	return h.edit(ctx, query, m.EnterNewCardNumber, view.BackToRequisitesKeyboard(m))
}

func (h *Handler) OnDeleteCard(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)

	cardID, err := strconv.ParseInt(callbackArg(query.Data), 10, 64)
	if err != nil {
		return nil
	}

	card, err := h.requisites.GetCard(ctx, query.From.ID, cardID)
	if err != nil {
		if domain.HasCode(err, errcodes.CardNotFound) {
			return h.alert(ctx, query.ID, m.GenericError)
		}
		return fmt.Errorf("requisites.GetCard: %w", err)
	}

	if err := h.requisites.DeleteCard(ctx, query.From.ID, cardID); err != nil {
		return fmt.Errorf("requisites.DeleteCard: %w", err)
	}

	text := fmt.Sprintf(m.CardDeleted, card.Masked())

	return h.edit(ctx, query, text, view.BackToRequisitesKeyboard(m))
}

// ----- Оплата -----

func (h *Handler) OnPay(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)

	deal, err := h.currentBuyerDeal(ctx, query.From.ID)
	if err != nil {
		return fmt.Errorf("currentBuyerDeal: %w", err)
	}
	if deal == nil {
		return h.alert(ctx, query.ID, m.DealNotFound)
	}

	var text string
	switch callbackArg(query.Data) {
	case "usdt":
		text = fmt.Sprintf(m.PayUsdtInstructions,
			view.FormatAmount(deal.UsdtAmount),
			view.FormatAmount(deal.Amount), deal.FiatCurrency,
			deal.PaymentAddress)
	default:
		text = fmt.Sprintf(m.PayTonInstructions,
			view.FormatAmount(deal.TonAmount),
			view.FormatAmount(deal.Amount), deal.FiatCurrency,
			deal.PaymentAddress)
	}

	return h.edit(ctx, query, text, view.PaymentRetryKeyboard(m))
}

func (h *Handler) OnRetryPayment(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)

	deal, err := h.currentBuyerDeal(ctx, query.From.ID)
	if err != nil {
		return fmt.Errorf("currentBuyerDeal: %w", err)
	}
	if deal == nil {
		return h.alert(ctx, query.ID, m.DealNotFound)
	}

	return h.edit(ctx, query, m.ChoosePaymentMethod, view.BuyerPaymentKeyboard(m, deal.ID))
}

// OnPaymentClaim — покупатель сообщил об оплате. Администраторы
// получают заявку с кнопкой подтверждения этой конкретной сделки.
func (h *Handler) OnPaymentClaim(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)

	deal, err := h.deals.Get(ctx, callbackArg(query.Data))
	if err != nil {
		if domain.HasCode(err, errcodes.DealNotFound) {
			return h.alert(ctx, query.ID, m.DealNotFound)
		}
		return fmt.Errorf("deals.Get: %w", err)
	}

	if deal.BuyerID == nil || *deal.BuyerID != query.From.ID {
		return h.alert(ctx, query.ID, m.DealNotFound)
	}

	buyer, err := h.users.GetByID(ctx, query.From.ID)
	if err != nil {
		buyer = &entity.User{ID: query.From.ID}
	}

	if err := h.queue.PaymentClaim(ctx, deal, buyer); err != nil {
		logger(ctx).Error("payment claim enqueue failed", "deal_id", deal.ID, "error", err)
	}

	return h.alert(ctx, query.ID, m.PaymentClaimed)
}

// OnConfirm — администратор подтверждает оплату конкретной сделки.
func (h *Handler) OnConfirm(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)
	dealID := callbackArg(query.Data)

	if _, err := h.deals.ConfirmPayment(ctx, query.From.ID, dealID); err != nil {
		switch {
		case domain.HasCode(err, errcodes.DealNotFound):
			return h.alert(ctx, query.ID, m.DealNotFound)
		case domain.HasCode(err, errcodes.Forbidden),
			domain.HasCode(err, errcodes.DealWrongStatus):
			return h.alert(ctx, query.ID, m.GenericError)
		}
		return fmt.Errorf("deals.ConfirmPayment: %w", err)
	}

	return h.edit(ctx, query, m.PaymentConfirmed, nil)
}

// OnGiftSent — продавец отметил отправку товара.
func (h *Handler) OnGiftSent(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)
	dealID := callbackArg(query.Data)

	if _, err := h.deals.MarkGiftSent(ctx, query.From.ID, dealID); err != nil {
		switch {
		case domain.HasCode(err, errcodes.DealNotFound):
			return h.alert(ctx, query.ID, m.DealNotFound)
		case domain.HasCode(err, errcodes.NotDealSeller),
			domain.HasCode(err, errcodes.DealWrongStatus):
			return h.alert(ctx, query.ID, m.GenericError)
		}
		return fmt.Errorf("deals.MarkGiftSent: %w", err)
	}

	return h.edit(ctx, query, m.WaitingConfirmation, nil)
}

// ----- Навигация -----

func (h *Handler) OnBackMain(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)
	return h.edit(ctx, query, m.Welcome, view.WelcomeKeyboard(m))
}

func (h *Handler) OnBackRequisites(ctx *th.Context, query telego.CallbackQuery) error {
	return h.OnRequisites(ctx, query)
}

func (h *Handler) OnBackRequisitesAdd(ctx *th.Context, query telego.CallbackQuery) error {
	return h.OnAddRequisites(ctx, query)
}

func (h *Handler) OnBackDealType(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)
	return h.edit(ctx, query, m.ChooseDealType, view.DealTypeKeyboard(m))
}

func (h *Handler) OnBackCurrency(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)
	return h.edit(ctx, query, m.ChooseCurrency, view.CurrencyKeyboard(m))
}

func (h *Handler) OnBackFiat(ctx *th.Context, query telego.CallbackQuery) error {
	m := h.messagesFor(ctx, query.From.ID)
	return h.edit(ctx, query, m.ChooseFiat, view.FiatKeyboard(m))
}

// OnExitDeal сбрасывает незавершённый мастер и возвращает в меню.
func (h *Handler) OnExitDeal(ctx *th.Context, query telego.CallbackQuery) error {
	h.sessions.Clear(query.From.ID)

	m := h.messagesFor(ctx, query.From.ID)

	return h.edit(ctx, query, m.Welcome, view.WelcomeKeyboard(m))
}

func (h *Handler) OnCancelDeal(ctx *th.Context, query telego.CallbackQuery) error {
	return h.OnExitDeal(ctx, query)
}

func (h *Handler) OnContactSupport(ctx *th.Context, query telego.CallbackQuery) error {
	return h.OnSupport(ctx, query)
}

// currentBuyerDeal — активная сделка пользователя как покупателя.
func (h *Handler) currentBuyerDeal(ctx *th.Context, userID int64) (*entity.Deal, error) {
	deals, err := h.deals.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range deals {
		d := &deals[i]
		if d.BuyerID == nil || *d.BuyerID != userID {
			continue
		}
		if d.Status == entity.StatusWaitingPayment || d.Status == entity.StatusPaid {
			return d, nil
		}
	}

	return nil, nil
}

func (h *Handler) callbackSessionError(ctx *th.Context, query telego.CallbackQuery, m view.Messages, err error) error {
	if domain.HasCode(err, errcodes.SessionNotFound) ||
		domain.HasCode(err, errcodes.SessionWrongStep) ||
		domain.HasCode(err, errcodes.DealDraftIncomplete) ||
		domain.HasCode(err, errcodes.InvalidDealType) {
		return h.alert(ctx, query.ID, m.SessionExpired)
	}
	return err
}
