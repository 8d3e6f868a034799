package view

import (
	"fmt"
	"strconv"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"tg_guarantor/internal/domain/entity"
)

// Статичные callback-данные.
const (
	CallbackCreateDeal        = "create_deal"
	CallbackProfile           = "profile"
	CallbackRequisites        = "requisites"
	CallbackSupport           = "support"
	CallbackChangeLanguage    = "change_language"
	CallbackBackMain          = "back_main"
	CallbackBackRequisites    = "back_requisites"
	CallbackBackRequisitesAdd = "back_requisites_add"
	CallbackBackDealType      = "back_deal_type"
	CallbackBackCurrency      = "back_currency"
	CallbackBackFiat          = "back_fiat"
	CallbackWarningRead       = "warning_read"
	CallbackAddRequisites     = "add_requisites"
	CallbackViewRequisites    = "view_requisites"
	CallbackAddWallet         = "add_ton_wallet"
	CallbackAddCard           = "add_bank_card"
	CallbackViewWallet        = "view_ton_wallet"
	CallbackViewCards         = "view_bank_cards"
	CallbackMyDeals           = "my_deals"
	CallbackExitDeal          = "exit_deal"
	CallbackCancelDeal        = "cancel_deal"
	CallbackContactSupport    = "contact_support"
	CallbackRetryPayment      = "retry_payment"
)

// Префиксы параметризованных callback-данных. Формат: "<prefix>:<arg>".
const (
	PrefixDealType     = "deal_type"
	PrefixCurrency     = "currency"
	PrefixFiat         = "fiat"
	PrefixLanguage     = "lang"
	PrefixCardCurrency = "card_currency"
	PrefixSelectCard   = "select_card"
	PrefixEditCard     = "edit_card"
	PrefixDeleteCard   = "delete_card"
	PrefixDealInfo     = "deal_info"
	PrefixPaymentClaim = "paid"
	PrefixConfirm      = "confirm"
	PrefixGiftSent     = "gift_sent"
	PrefixPay          = "pay"
)

// Валюты банковских карт и фиатные валюты сделок.
//
//nolint:gochecknoglobals
var fiatCurrencies = []string{"RUB", "EUR", "UZS", "KZT", "KGS", "IDR", "UAH", "BYN"}

func WelcomeKeyboard(m Messages) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(
			tu.InlineKeyboardButton(m.CreateDealButton).WithCallbackData(CallbackCreateDeal),
			tu.InlineKeyboardButton(m.ProfileButton).WithCallbackData(CallbackProfile),
		),
		tu.InlineKeyboardRow(
			tu.InlineKeyboardButton(m.RequisitesButton).WithCallbackData(CallbackRequisites),
			tu.InlineKeyboardButton(m.SupportButton).WithCallbackData(CallbackSupport),
		),
		tu.InlineKeyboardRow(
			tu.InlineKeyboardButton(m.LanguageButton).WithCallbackData(CallbackChangeLanguage),
		),
	)
}

func DealTypeKeyboard(m Messages) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.GiftsButton).
			WithCallbackData(fmt.Sprintf("%s:%s", PrefixDealType, entity.DealTypeGift))),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.UsernameButton).
			WithCallbackData(fmt.Sprintf("%s:%s", PrefixDealType, entity.DealTypeUsername))),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.ChannelButton).
			WithCallbackData(fmt.Sprintf("%s:%s", PrefixDealType, entity.DealTypeChannel))),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.BackButton).
			WithCallbackData(CallbackBackMain)),
	)
}

func CurrencyKeyboard(m Messages) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(tu.InlineKeyboardButton("💳 На карту").
			WithCallbackData(PrefixCurrency+":card")),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton("⭐ Stars").
			WithCallbackData(PrefixCurrency+":stars")),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton("💎 Ton").
			WithCallbackData(PrefixCurrency+":ton")),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.BackButton).
			WithCallbackData(CallbackBackDealType)),
	)
}

func FiatKeyboard(m Messages) *telego.InlineKeyboardMarkup {
	rows := make([][]telego.InlineKeyboardButton, 0, len(fiatCurrencies)+1)
	for _, currency := range fiatCurrencies {
		rows = append(rows, tu.InlineKeyboardRow(
			tu.InlineKeyboardButton(currency).
				WithCallbackData(fmt.Sprintf("%s:%s", PrefixFiat, currency)),
		))
	}
	rows = append(rows, tu.InlineKeyboardRow(
		tu.InlineKeyboardButton(m.BackButton).WithCallbackData(CallbackBackCurrency),
	))

	return tu.InlineKeyboard(rows...)
}

func CardCurrencyKeyboard(m Messages) *telego.InlineKeyboardMarkup {
	rows := make([][]telego.InlineKeyboardButton, 0, len(fiatCurrencies)+1)
	for _, currency := range fiatCurrencies {
		rows = append(rows, tu.InlineKeyboardRow(
			tu.InlineKeyboardButton(currency).
				WithCallbackData(fmt.Sprintf("%s:%s", PrefixCardCurrency, currency)),
		))
	}
	rows = append(rows, tu.InlineKeyboardRow(
		tu.InlineKeyboardButton(m.BackButton).WithCallbackData(CallbackBackRequisitesAdd),
	))

	return tu.InlineKeyboard(rows...)
}

func WarningKeyboard(m Messages) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.IReadButton).
			WithCallbackData(CallbackWarningRead)),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.BackButton).
			WithCallbackData(CallbackBackFiat)),
	)
}

// DealManagementKeyboard показывается продавцу после создания сделки.
func DealManagementKeyboard(m Messages, shareURL string) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.ShareDealButton).WithURL(shareURL)),
		tu.InlineKeyboardRow(
			tu.InlineKeyboardButton(m.ExitDealButton).WithCallbackData(CallbackExitDeal),
			tu.InlineKeyboardButton(m.MyDealsButton).WithCallbackData(CallbackMyDeals),
		),
	)
}

// BuyerPaymentKeyboard показывается покупателю после присоединения.
func BuyerPaymentKeyboard(m Messages, dealID string) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(
			tu.InlineKeyboardButton("💎 TON").WithCallbackData(PrefixPay+":ton"),
			tu.InlineKeyboardButton("💵 USDT").WithCallbackData(PrefixPay+":usdt"),
		),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.ConfirmPaymentButton).
			WithCallbackData(fmt.Sprintf("%s:%s", PrefixPaymentClaim, dealID))),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.ContactSupport).
			WithCallbackData(CallbackContactSupport)),
	)
}

func PaymentRetryKeyboard(m Messages) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.RetryButton).
			WithCallbackData(CallbackRetryPayment)),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.SupportButton).
			WithCallbackData(CallbackSupport)),
	)
}

// SellerGiftSentKeyboard приходит продавцу после подтверждения оплаты.
func SellerGiftSentKeyboard(m Messages, dealID string) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.GiftSentButton).
			WithCallbackData(fmt.Sprintf("%s:%s", PrefixGiftSent, dealID))),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.ContactSupport).
			WithCallbackData(CallbackContactSupport)),
	)
}

// AdminConfirmKeyboard приходит администратору вместе с заявкой об оплате.
func AdminConfirmKeyboard(m Messages, dealID string) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.AdminConfirmButton).
			WithCallbackData(fmt.Sprintf("%s:%s", PrefixConfirm, dealID))),
	)
}

// PendingDealsKeyboard — список ожидающих оплаты сделок для /pending.
func PendingDealsKeyboard(m Messages, deals []entity.Deal) *telego.InlineKeyboardMarkup {
	rows := make([][]telego.InlineKeyboardButton, 0, len(deals))
	for _, d := range deals {
		label := fmt.Sprintf("#%s | %s %s", d.ID, FormatAmount(d.TotalAmount), d.FiatCurrency)
		rows = append(rows, tu.InlineKeyboardRow(
			tu.InlineKeyboardButton(label).
				WithCallbackData(fmt.Sprintf("%s:%s", PrefixConfirm, d.ID)),
		))
	}

	return tu.InlineKeyboard(rows...)
}

func LanguageKeyboard() *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(tu.InlineKeyboardButton("🇷🇺 Русский").
			WithCallbackData(PrefixLanguage+":"+entity.LanguageRU)),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton("🇬🇧 English").
			WithCallbackData(PrefixLanguage+":"+entity.LanguageEN)),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton("⬅️ Назад").
			WithCallbackData(CallbackBackMain)),
	)
}

func RequisitesMainKeyboard(m Messages) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(tu.InlineKeyboardButton("➕ "+m.RequisitesButton).
			WithCallbackData(CallbackAddRequisites)),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton("👀 "+m.ViewCardsButton).
			WithCallbackData(CallbackViewRequisites)),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.BackButton).
			WithCallbackData(CallbackBackMain)),
	)
}

func RequisitesAddKeyboard(m Messages) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.AddCardButton).
			WithCallbackData(CallbackAddCard)),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.AddWalletButton).
			WithCallbackData(CallbackAddWallet)),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.BackButton).
			WithCallbackData(CallbackBackRequisites)),
	)
}

func RequisitesViewKeyboard(m Messages) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.ViewCardsButton).
			WithCallbackData(CallbackViewCards)),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.ViewWalletButton).
			WithCallbackData(CallbackViewWallet)),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.BackButton).
			WithCallbackData(CallbackBackRequisites)),
	)
}

func BackToRequisitesKeyboard(m Messages) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.BackButton).
			WithCallbackData(CallbackBackRequisites)),
	)
}

func ViewRequisitesKeyboard(m Messages) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.ViewCardsButton).
			WithCallbackData(CallbackViewRequisites)),
	)
}

// CardsListKeyboard — по кнопке на карту, маскированный номер с валютой.
func CardsListKeyboard(m Messages, cards []entity.BankCard) *telego.InlineKeyboardMarkup {
	rows := make([][]telego.InlineKeyboardButton, 0, len(cards)+1)
	for _, card := range cards {
		label := fmt.Sprintf("%s (%s)", card.Masked(), card.Currency)
		rows = append(rows, tu.InlineKeyboardRow(
			tu.InlineKeyboardButton(label).
				WithCallbackData(fmt.Sprintf("%s:%d", PrefixSelectCard, card.ID)),
		))
	}
	rows = append(rows, tu.InlineKeyboardRow(
		tu.InlineKeyboardButton(m.BackButton).WithCallbackData(CallbackBackRequisites),
	))

	return tu.InlineKeyboard(rows...)
}

func SelectedCardKeyboard(m Messages, cardID int64) *telego.InlineKeyboardMarkup {
	id := strconv.FormatInt(cardID, 10)

	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(tu.InlineKeyboardButton("✏️ Редактировать").
			WithCallbackData(PrefixEditCard+":"+id)),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton("❌ Удалить").
			WithCallbackData(PrefixDeleteCard+":"+id)),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.BackButton).
			WithCallbackData(CallbackViewCards)),
	)
}

func ProfileKeyboard(m Messages) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.MyDealsButton).
			WithCallbackData(CallbackMyDeals)),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.BackButton).
			WithCallbackData(CallbackBackMain)),
	)
}

// DealsListKeyboard — список сделок пользователя, не больше десяти.
func DealsListKeyboard(m Messages, deals []entity.Deal) *telego.InlineKeyboardMarkup {
	const maxDeals = 10

	shown := deals
	if len(shown) > maxDeals {
		shown = shown[:maxDeals]
	}

	rows := make([][]telego.InlineKeyboardButton, 0, len(shown)+1)
	for _, d := range shown {
		label := fmt.Sprintf("💰 %s %s | #%s", FormatAmount(d.Amount), d.FiatCurrency, d.ID)
		rows = append(rows, tu.InlineKeyboardRow(
			tu.InlineKeyboardButton(label).
				WithCallbackData(fmt.Sprintf("%s:%s", PrefixDealInfo, d.ID)),
		))
	}
	rows = append(rows, tu.InlineKeyboardRow(
		tu.InlineKeyboardButton(m.BackToProfile).WithCallbackData(CallbackProfile),
	))

	return tu.InlineKeyboard(rows...)
}

func DealInfoBackKeyboard(m Messages) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.BackButton).
			WithCallbackData(CallbackMyDeals)),
	)
}

func SupportKeyboard(m Messages, supportURL string) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(tu.InlineKeyboardButton(m.ContactSupport).WithURL(supportURL)),
	)
}

// FormatAmount печатает сумму без хвостовых нулей: 1030.00 -> "1030",
// 42.39 -> "42.39".
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
