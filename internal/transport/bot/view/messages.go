// Package view содержит тексты сообщений и клавиатуры бота.
// Все пользовательские тексты живут здесь, хендлеры только подставляют
// данные.
package view

import "tg_guarantor/internal/domain/entity"

// Messages — полный набор текстов для одного языка.
type Messages struct {
	Welcome string

	// Кнопки главного меню.
	CreateDealButton string
	ProfileButton    string
	RequisitesButton string
	SupportButton    string
	LanguageButton   string
	BackButton       string
	CancelButton     string

	// Мастер создания сделки.
	ChooseDealType   string
	GiftsButton      string
	UsernameButton   string
	ChannelButton    string
	EnterGiftLinks   string
	EnterChannelLink string
	EnterUsername    string
	EnterPremium     string
	ChooseCurrency   string
	ChooseFiat       string
	EnterAmount      string // %s — валюта
	WarningMessage   string
	IReadButton      string

	// Карточка сделки.
	DealCreated      string // id, amount, currency, total, currency, description, link
	ShareDealButton  string
	ExitDealButton   string
	MyDealsButton    string
	DealNotFound     string
	CannotJoinOwn    string
	DealAlreadyTaken string

	// Сторона покупателя.
	BuyerDealInfo        string // id, seller, stats, amount, currency, total, description, address, ton, usdt
	ConfirmPaymentButton string
	ContactSupport       string
	PaymentClaimed       string
	ChoosePaymentMethod  string
	PayTonInstructions   string // ton amount, fiat amount, currency, address
	PayUsdtInstructions  string // usdt amount, fiat amount, currency, address
	RetryButton          string

	// Уведомления о переходах.
	BuyerJoined         string // username, stats
	PaymentConfirmed    string
	SellerPaymentNotice string // deal id
	GiftSentButton      string
	WaitingConfirmation string

	// Админ.
	AdminPaymentClaim  string // deal id, total, currency, buyer
	AdminConfirmButton string
	AdminModeEnabled   string
	NoPendingDeals     string
	PendingDealsHeader string

	// Профиль и сделки.
	ProfileInfo       string // количество успешных сделок
	MyDealsHeader     string
	MyDealsEmpty      string
	DealInfoSeller    string
	DealInfoBuyer     string
	CounterpartBuyer  string // %s — покупатель, %d — его успешные сделки
	CounterpartNone   string
	CounterpartSeller string // %s — продавец, %d — его успешные сделки
	BackToProfile     string

	// Реквизиты.
	RequisitesMenu      string
	RequisitesAddMenu   string
	RequisitesViewMenu  string
	AddCardButton       string
	AddWalletButton     string
	ViewCardsButton     string
	ViewWalletButton    string
	EnterWallet         string
	WalletSaved         string // кошелёк
	WalletInvalid       string
	WalletNotSet        string
	YourWallet          string // кошелёк
	ChooseCardCurrency  string
	EnterCardNumber     string // валюта
	EnterNewCardNumber  string
	CardSaved           string // номер
	CardUpdated         string // номер
	CardDeleted         string // номер
	CardInvalid         string
	CardsEmpty          string
	CardsHeader         string
	SelectedCard        string // валюта, маска

	// Общие.
	ChooseLanguage string
	SupportPrompt  string
	UseMenu        string
	GenericError   string
	InvalidAmount  string
	InvalidItems   string
	SessionExpired string
}

//nolint:gochecknoglobals
var messagesByLanguage = map[string]Messages{
	entity.LanguageRU: messagesRU,
	entity.LanguageEN: messagesEN,
}

// For возвращает набор текстов для языка, по умолчанию русский.
func For(language string) Messages {
	if m, ok := messagesByLanguage[language]; ok {
		return m
	}
	return messagesRU
}

//nolint:gochecknoglobals
var messagesRU = Messages{
	Welcome: "🛡 *Добро пожаловать в гарант-сервис!*\n\n" +
		"Мы обеспечиваем безопасные сделки: продавец получает оплату, покупатель — товар.\n\n" +
		"Выберите действие:",

	CreateDealButton: "🤝 Создать сделку",
	ProfileButton:    "👤 Профиль",
	RequisitesButton: "💳 Реквизиты",
	SupportButton:    "🆘 Поддержка",
	LanguageButton:   "🌐 Язык",
	BackButton:       "⬅️ Назад",
	CancelButton:     "❌ Отмена",

	ChooseDealType:   "📦 Выберите тип сделки:",
	GiftsButton:      "🎁 Подарки",
	UsernameButton:   "🏷 Юзернейм",
	ChannelButton:    "📢 Канал",
	EnterGiftLinks:   "🎁 Отправьте ссылки на подарки, каждую с новой строки:",
	EnterChannelLink: "📢 Отправьте ссылку на канал (начинается с https://t.me/):",
	EnterUsername:    "🏷 Отправьте юзернейм, начиная с @:",
	EnterPremium:     "⭐ Опишите, что продаёте:",
	ChooseCurrency:   "💱 Выберите способ оплаты:",
	ChooseFiat:       "💱 Выберите валюту:",
	EnterAmount:      "💰 Введите сумму сделки в %s:",
	WarningMessage: "⚠️ *Внимание!*\n\n" +
		"Передавайте товар только после подтверждения оплаты ботом.\n" +
		"Администрация никогда не пишет первой.",
	IReadButton: "✅ Я прочитал(а)",

	DealCreated: "🛡 Сделка #%s\n\n" +
		"💰 Сумма сделки: %s %s (%s %s)\n" +
		"📜 Описание:\n%s\n" +
		"🔗 Ссылка для пересылки: %s",
	ShareDealButton:  "📤 Поделиться сделкой",
	ExitDealButton:   "❌ Выйти из сделки",
	MyDealsButton:    "📋 Мои сделки",
	DealNotFound:     "❌ Сделка не найдена",
	CannotJoinOwn:    "❌ Нельзя присоединиться к собственной сделке",
	DealAlreadyTaken: "❌ К сделке уже присоединился другой покупатель",

	BuyerDealInfo: "🛡 Сделка #%s\n\n" +
		"📌 Продавец: %s\n╰ Успешные сделки: %d\n\n" +
		"💰 Сумма сделки: %s %s (итого %s %s)\n" +
		"📜 Описание:\n%s\n\n" +
		"💎 Адрес для оплаты: `%s`\n" +
		"К оплате: %s TON / %s USDT",
	ConfirmPaymentButton: "✅ Я оплатил(а)",
	ContactSupport:       "💬 Написать в поддержку",
	PaymentClaimed: "⏳ Оплата проверяется. Убедитесь, что перевод отправлен, " +
		"и ожидайте подтверждения.",
	ChoosePaymentMethod: "Выберите способ оплаты:",
	PayTonInstructions: "💎 Оплата TON\n\n" +
		"К оплате: %s TON\n" +
		"Сумма сделки: %s %s\n" +
		"Адрес для перевода: `%s`\n\n" +
		"После оплаты нажмите — *Повторить попытку*.",
	PayUsdtInstructions: "💵 Оплата USDT\n\n" +
		"К оплате: %s USDT\n" +
		"Сумма сделки: %s %s\n" +
		"Адрес/биржа: `%s`\n\n" +
		"После оплаты нажмите — *Повторить попытку*.",
	RetryButton: "🔄 Повторить попытку",

	BuyerJoined: "👥 К вашей сделке присоединился покупатель %s\n" +
		"╰ Успешные сделки: %d",
	PaymentConfirmed:    "✅ Оплата подтверждена! Ожидайте отправки товара продавцом.",
	SellerPaymentNotice: "✅ Оплата по сделке #%s подтверждена! Отправьте товар покупателю.",
	GiftSentButton:      "🎁 Товар отправлен",
	WaitingConfirmation: "⏳ Ожидайте подтверждения получения.",

	AdminPaymentClaim: "💰 Покупатель сообщил об оплате сделки #%s\n" +
		"Сумма: %s %s\nПокупатель: %s",
	AdminConfirmButton: "✅ Подтвердить оплату",
	AdminModeEnabled: "🔧 *Режим администратора активирован!*\n\n" +
		"Теперь вы можете подтверждать оплаты сделок.",
	NoPendingDeals:     "❌ Нет сделок, ожидающих оплаты",
	PendingDealsHeader: "⏳ Сделки в ожидании оплаты:",

	ProfileInfo:   "👤 *Профиль*\n\n📊 Успешных сделок: %d",
	MyDealsHeader: "🛡 Мои сделки\n\nВыберите сделку для управления:",
	MyDealsEmpty:  "🛡 Мои сделки\n\n📋 У вас пока нет сделок",
	DealInfoSeller: "📋 Информация о сделке #%s\n\n" +
		"👤 Вы продавец в сделке.\n%s\n\n" +
		"💰 Сумма сделки: %s %s (%s %s)\n📜 Вы продаете:\n%s",
	DealInfoBuyer: "📋 Информация о сделке #%s\n\n" +
		"👥 Вы покупатель в сделке.\n%s\n\n" +
		"💰 Сумма сделки: %s %s (%s %s)\n📜 Вы покупаете:\n%s",
	CounterpartBuyer:  "📌 Покупатель: %s\n╰ Успешные сделки: %d",
	CounterpartNone:   "📌 Покупатель: —",
	CounterpartSeller: "📌 Продавец: %s\n╰ Успешные сделки: %d",
	BackToProfile:     "⬅️ Назад в профиль",

	RequisitesMenu:     "💳 *Реквизиты*\n\nВыберите действие:",
	RequisitesAddMenu:  "💳 *Добавить реквизиты*\n\nВыберите тип реквизита:",
	RequisitesViewMenu: "💳 *Посмотреть реквизиты*\n\nВыберите тип реквизита:",
	AddCardButton:      "💳 Банковская карта",
	AddWalletButton:    "💎 TON кошелёк",
	ViewCardsButton:    "💳 Банковские карты",
	ViewWalletButton:   "💎 TON кошелёк",
	EnterWallet: "💎 *Добавление TON кошелька*\n\nВведите TON кошелек:\n\n" +
		"Пример: UQC6xSiO2wZ3GTGFnrdxoLY5iNqzwzZftbduHxznEHe6wC5M",
	WalletSaved:   "✅ TON кошелек успешно добавлен!\nРеквизит: %s",
	WalletInvalid: "❌ Неверный формат TON кошелька. Попробуйте еще раз:",
	WalletNotSet:  "❌ TON кошелек не добавлен",
	YourWallet:    "💎 *Ваш TON кошелёк*\n\n`%s`",
	ChooseCardCurrency: "💳 *Добавление банковской карты*\n\n" +
		"Выберите валюту карты:",
	EnterCardNumber: "💳 *Добавление банковской карты*\n\nВалюта: %s\n\n" +
		"Введите номер карты (16 цифр):\n\nПример: 1000100010001000",
	EnterNewCardNumber: "✏️ Введите новый номер карты (16 цифр):",
	CardSaved:          "✅ Банковская карта (%s) успешно добавлена",
	CardUpdated:        "✅ Банковская карта (%s) успешно обновлена",
	CardDeleted:        "💳 Реквизит успешно удалён\nРеквизит: %s",
	CardInvalid:        "❌ Неверный формат номера карты. Должно быть 16 цифр.",
	CardsEmpty:         "❌ Банковские карты не добавлены",
	CardsHeader: "💳 *Ваши банковские карты*\n\n" +
		"Выберите реквизит для управления:",
	SelectedCard: "💎 *Выбранный реквизит*\n\nТип реквизита: Банковская карта\n" +
		"Валюта: %s\n\nРеквизит: %s",

	ChooseLanguage: "🌐 Выберите язык / Choose language:",
	SupportPrompt:  "🆘 Нажмите кнопку ниже, чтобы написать в поддержку:",
	UseMenu:        "Используйте кнопки меню для навигации. Для начала нажмите /start",
	GenericError:   "❌ Произошла ошибка. Пожалуйста, попробуйте еще раз.",
	InvalidAmount:  "❌ Пожалуйста, введите корректную сумму (например: 2000.5)",
	InvalidItems:   "❌ Пожалуйста, проверьте формат и попробуйте еще раз",
	SessionExpired: "❌ Сессия истекла. Начните заново с /start",
}

//nolint:gochecknoglobals
var messagesEN = Messages{
	Welcome: "🛡 *Welcome to the escrow service!*\n\n" +
		"We secure your deals: the seller gets paid, the buyer gets the goods.\n\n" +
		"Choose an action:",

	CreateDealButton: "🤝 Create deal",
	ProfileButton:    "👤 Profile",
	RequisitesButton: "💳 Requisites",
	SupportButton:    "🆘 Support",
	LanguageButton:   "🌐 Language",
	BackButton:       "⬅️ Back",
	CancelButton:     "❌ Cancel",

	ChooseDealType:   "📦 Choose a deal type:",
	GiftsButton:      "🎁 Gifts",
	UsernameButton:   "🏷 Username",
	ChannelButton:    "📢 Channel",
	EnterGiftLinks:   "🎁 Send gift links, one per line:",
	EnterChannelLink: "📢 Send the channel link (starts with https://t.me/):",
	EnterUsername:    "🏷 Send the username, starting with @:",
	EnterPremium:     "⭐ Describe what you are selling:",
	ChooseCurrency:   "💱 Choose a payment method:",
	ChooseFiat:       "💱 Choose a currency:",
	EnterAmount:      "💰 Enter the deal amount in %s:",
	WarningMessage: "⚠️ *Warning!*\n\n" +
		"Hand over the goods only after the bot confirms the payment.\n" +
		"Support never messages you first.",
	IReadButton: "✅ I have read it",

	DealCreated: "🛡 Deal #%s\n\n" +
		"💰 Deal amount: %s %s (%s %s)\n" +
		"📜 Description:\n%s\n" +
		"🔗 Share link: %s",
	ShareDealButton:  "📤 Share deal",
	ExitDealButton:   "❌ Leave deal",
	MyDealsButton:    "📋 My deals",
	DealNotFound:     "❌ Deal not found",
	CannotJoinOwn:    "❌ You cannot join your own deal",
	DealAlreadyTaken: "❌ Another buyer has already joined this deal",

	BuyerDealInfo: "🛡 Deal #%s\n\n" +
		"📌 Seller: %s\n╰ Successful deals: %d\n\n" +
		"💰 Deal amount: %s %s (total %s %s)\n" +
		"📜 Description:\n%s\n\n" +
		"💎 Payment address: `%s`\n" +
		"To pay: %s TON / %s USDT",
	ConfirmPaymentButton: "✅ I have paid",
	ContactSupport:       "💬 Contact support",
	PaymentClaimed: "⏳ Payment is being verified. Make sure the transfer is sent " +
		"and wait for confirmation.",
	ChoosePaymentMethod: "Choose a payment method:",
	PayTonInstructions: "💎 TON payment\n\n" +
		"To pay: %s TON\n" +
		"Deal amount: %s %s\n" +
		"Transfer address: `%s`\n\n" +
		"After paying press — *Retry*.",
	PayUsdtInstructions: "💵 USDT payment\n\n" +
		"To pay: %s USDT\n" +
		"Deal amount: %s %s\n" +
		"Address/exchange: `%s`\n\n" +
		"After paying press — *Retry*.",
	RetryButton: "🔄 Retry",

	BuyerJoined: "👥 Buyer %s joined your deal\n" +
		"╰ Successful deals: %d",
	PaymentConfirmed:    "✅ Payment confirmed! Wait for the seller to send the goods.",
	SellerPaymentNotice: "✅ Payment for deal #%s confirmed! Send the goods to the buyer.",
	GiftSentButton:      "🎁 Goods sent",
	WaitingConfirmation: "⏳ Waiting for delivery confirmation.",

	AdminPaymentClaim: "💰 Buyer reported payment for deal #%s\n" +
		"Amount: %s %s\nBuyer: %s",
	AdminConfirmButton: "✅ Confirm payment",
	AdminModeEnabled: "🔧 *Administrator mode enabled!*\n\n" +
		"You can now confirm deal payments.",
	NoPendingDeals:     "❌ No deals waiting for payment",
	PendingDealsHeader: "⏳ Deals waiting for payment:",

	ProfileInfo:   "👤 *Profile*\n\n📊 Successful deals: %d",
	MyDealsHeader: "🛡 My deals\n\nChoose a deal to manage:",
	MyDealsEmpty:  "🛡 My deals\n\n📋 You have no deals yet",
	DealInfoSeller: "📋 Deal #%s\n\n" +
		"👤 You are the seller.\n%s\n\n" +
		"💰 Deal amount: %s %s (%s %s)\n📜 You are selling:\n%s",
	DealInfoBuyer: "📋 Deal #%s\n\n" +
		"👥 You are the buyer.\n%s\n\n" +
		"💰 Deal amount: %s %s (%s %s)\n📜 You are buying:\n%s",
	CounterpartBuyer:  "📌 Buyer: %s\n╰ Successful deals: %d",
	CounterpartNone:   "📌 Buyer: —",
	CounterpartSeller: "📌 Seller: %s\n╰ Successful deals: %d",
	BackToProfile:     "⬅️ Back to profile",

	RequisitesMenu:     "💳 *Requisites*\n\nChoose an action:",
	RequisitesAddMenu:  "💳 *Add requisites*\n\nChoose a requisite type:",
	RequisitesViewMenu: "💳 *View requisites*\n\nChoose a requisite type:",
	AddCardButton:      "💳 Bank card",
	AddWalletButton:    "💎 TON wallet",
	ViewCardsButton:    "💳 Bank cards",
	ViewWalletButton:   "💎 TON wallet",
	EnterWallet: "💎 *Adding a TON wallet*\n\nEnter your TON wallet:\n\n" +
		"Example: UQC6xSiO2wZ3GTGFnrdxoLY5iNqzwzZftbduHxznEHe6wC5M",
	WalletSaved:   "✅ TON wallet saved!\nRequisite: %s",
	WalletInvalid: "❌ Invalid TON wallet format. Try again:",
	WalletNotSet:  "❌ TON wallet is not set",
	YourWallet:    "💎 *Your TON wallet*\n\n`%s`",
	ChooseCardCurrency: "💳 *Adding a bank card*\n\n" +
		"Choose the card currency:",
	EnterCardNumber: "💳 *Adding a bank card*\n\nCurrency: %s\n\n" +
		"Enter the card number (16 digits):\n\nExample: 1000100010001000",
	EnterNewCardNumber: "✏️ Enter the new card number (16 digits):",
	CardSaved:          "✅ Bank card (%s) saved",
	CardUpdated:        "✅ Bank card (%s) updated",
	CardDeleted:        "💳 Requisite deleted\nRequisite: %s",
	CardInvalid:        "❌ Invalid card number format. Must be 16 digits.",
	CardsEmpty:         "❌ No bank cards added",
	CardsHeader: "💳 *Your bank cards*\n\n" +
		"Choose a requisite to manage:",
	SelectedCard: "💎 *Selected requisite*\n\nRequisite type: Bank card\n" +
		"Currency: %s\n\nRequisite: %s",

	ChooseLanguage: "🌐 Выберите язык / Choose language:",
	SupportPrompt:  "🆘 Press the button below to contact support:",
	UseMenu:        "Use the menu buttons to navigate. Press /start to begin",
	GenericError:   "❌ Something went wrong. Please try again.",
	InvalidAmount:  "❌ Please enter a valid amount (for example: 2000.5)",
	InvalidItems:   "❌ Please check the format and try again",
	SessionExpired: "❌ Session expired. Start over with /start",
}
