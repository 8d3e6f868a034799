package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"tg_guarantor/internal/transport/bot/middleware"
	"tg_guarantor/internal/transport/bot/view"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler) {
	bh.Use(middleware.ErrorReply(h.users))

	// Команды
	bh.HandleMessage(h.OnStart, th.CommandEqual("start"))
	bh.HandleMessage(h.OnSculpture, th.CommandEqual("sculpture"))

	// Админские команды за repo-backed проверкой прав
	adminGroup := bh.Group(th.AnyMessage())
	adminGroup.Use(middleware.AdminOnly(h.users))
	adminGroup.HandleMessage(h.OnPending, th.CommandEqual("pending"))

	// Текстовый ввод мастеров
	bh.HandleMessage(h.OnText, th.AnyMessage())

	// Главное меню
	bh.HandleCallbackQuery(h.OnCreateDeal, th.CallbackDataEqual(view.CallbackCreateDeal))
	bh.HandleCallbackQuery(h.OnProfile, th.CallbackDataEqual(view.CallbackProfile))
	bh.HandleCallbackQuery(h.OnRequisites, th.CallbackDataEqual(view.CallbackRequisites))
	bh.HandleCallbackQuery(h.OnSupport, th.CallbackDataEqual(view.CallbackSupport))
	bh.HandleCallbackQuery(h.OnChangeLanguage, th.CallbackDataEqual(view.CallbackChangeLanguage))
	bh.HandleCallbackQuery(h.OnLanguage, th.CallbackDataPrefix(view.PrefixLanguage+":"))

	// Мастер создания сделки
	bh.HandleCallbackQuery(h.OnDealType, th.CallbackDataPrefix(view.PrefixDealType+":"))
	bh.HandleCallbackQuery(h.OnCurrency, th.CallbackDataPrefix(view.PrefixCurrency+":"))
	bh.HandleCallbackQuery(h.OnFiat, th.CallbackDataPrefix(view.PrefixFiat+":"))
	bh.HandleCallbackQuery(h.OnWarningRead, th.CallbackDataEqual(view.CallbackWarningRead))

	// Профиль и сделки
	bh.HandleCallbackQuery(h.OnMyDeals, th.CallbackDataEqual(view.CallbackMyDeals))
	bh.HandleCallbackQuery(h.OnDealInfo, th.CallbackDataPrefix(view.PrefixDealInfo+":"))

	// Реквизиты
	bh.HandleCallbackQuery(h.OnAddRequisites, th.CallbackDataEqual(view.CallbackAddRequisites))
	bh.HandleCallbackQuery(h.OnViewRequisites, th.CallbackDataEqual(view.CallbackViewRequisites))
	bh.HandleCallbackQuery(h.OnAddWallet, th.CallbackDataEqual(view.CallbackAddWallet))
	bh.HandleCallbackQuery(h.OnAddCard, th.CallbackDataEqual(view.CallbackAddCard))
	bh.HandleCallbackQuery(h.OnCardCurrency, th.CallbackDataPrefix(view.PrefixCardCurrency+":"))
	bh.HandleCallbackQuery(h.OnViewWallet, th.CallbackDataEqual(view.CallbackViewWallet))
	bh.HandleCallbackQuery(h.OnViewCards, th.CallbackDataEqual(view.CallbackViewCards))
	bh.HandleCallbackQuery(h.OnSelectCard, th.CallbackDataPrefix(view.PrefixSelectCard+":"))
	bh.HandleCallbackQuery(h.OnEditCard, th.CallbackDataPrefix(view.PrefixEditCard+":"))
	bh.HandleCallbackQuery(h.OnDeleteCard, th.CallbackDataPrefix(view.PrefixDeleteCard+":"))

	// Оплата
	bh.HandleCallbackQuery(h.OnPay, th.CallbackDataPrefix(view.PrefixPay+":"))
	bh.HandleCallbackQuery(h.OnRetryPayment, th.CallbackDataEqual(view.CallbackRetryPayment))
	bh.HandleCallbackQuery(h.OnPaymentClaim, th.CallbackDataPrefix(view.PrefixPaymentClaim+":"))
	bh.HandleCallbackQuery(h.OnGiftSent, th.CallbackDataPrefix(view.PrefixGiftSent+":"))

	// Подтверждение оплаты — только администраторы. Сервис проверяет
	// права повторно, миддлварь отсекает чужие нажатия раньше.
	confirmGroup := bh.Group(th.AnyCallbackQuery())
	confirmGroup.Use(middleware.AdminOnly(h.users))
	confirmGroup.HandleCallbackQuery(h.OnConfirm, th.CallbackDataPrefix(view.PrefixConfirm+":"))

	// Навигация
	bh.HandleCallbackQuery(h.OnBackMain, th.CallbackDataEqual(view.CallbackBackMain))
	bh.HandleCallbackQuery(h.OnBackRequisites, th.CallbackDataEqual(view.CallbackBackRequisites))
	bh.HandleCallbackQuery(h.OnBackRequisitesAdd, th.CallbackDataEqual(view.CallbackBackRequisitesAdd))
	bh.HandleCallbackQuery(h.OnBackDealType, th.CallbackDataEqual(view.CallbackBackDealType))
	bh.HandleCallbackQuery(h.OnBackCurrency, th.CallbackDataEqual(view.CallbackBackCurrency))
	bh.HandleCallbackQuery(h.OnBackFiat, th.CallbackDataEqual(view.CallbackBackFiat))
	bh.HandleCallbackQuery(h.OnExitDeal, th.CallbackDataEqual(view.CallbackExitDeal))
	bh.HandleCallbackQuery(h.OnCancelDeal, th.CallbackDataEqual(view.CallbackCancelDeal))
	bh.HandleCallbackQuery(h.OnContactSupport, th.CallbackDataEqual(view.CallbackContactSupport))

	// Шаринг сделки через inline-режим
	bh.HandleInlineQuery(h.OnInlineQuery, th.AnyInlineQuery())
}
