package session

import "fmt"

// Stage — шаг мастера. Линейная цепочка, назад только через явные
// "back"-события, которые маршрутизирует транспорт заново начиная шаг.
type Stage uint8

const (
	StageIdle Stage = iota
	StageSelectingDealType
	StageEnteringItems
	StageSelectingCurrency
	StageSelectingFiat // Только если расчёт через карту
	StageEnteringAmount
	StageShowingWarning
	StageEnteringWallet
	StageEnteringCardNumber
	StageEditingCardNumber
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageSelectingDealType:
		return "selecting_deal_type"
	case StageEnteringItems:
		return "entering_items"
	case StageSelectingCurrency:
		return "selecting_currency"
	case StageSelectingFiat:
		return "selecting_fiat"
	case StageEnteringAmount:
		return "entering_amount"
	case StageShowingWarning:
		return "showing_warning"
	case StageEnteringWallet:
		return "entering_wallet"
	case StageEnteringCardNumber:
		return "entering_card_number"
	case StageEditingCardNumber:
		return "editing_card_number"
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

// Event — вход мастера: свободный текст или нажатие кнопки,
// уже приведённые транспортом к дискретному событию.
type Event uint8

const (
	EventDealTypeChosen Event = iota
	EventItemsEntered
	EventCurrencyChosen
	EventFiatChosen
	EventAmountEntered
	EventWarningAccepted
	EventWalletEntered
	EventCardNumberEntered
	EventCardEdited
	eventSentinel // Для проверки полноты таблицы
)

func (e Event) String() string {
	switch e {
	case EventDealTypeChosen:
		return "deal_type_chosen"
	case EventItemsEntered:
		return "items_entered"
	case EventCurrencyChosen:
		return "currency_chosen"
	case EventFiatChosen:
		return "fiat_chosen"
	case EventAmountEntered:
		return "amount_entered"
	case EventWarningAccepted:
		return "warning_accepted"
	case EventWalletEntered:
		return "wallet_entered"
	case EventCardNumberEntered:
		return "card_number_entered"
	case EventCardEdited:
		return "card_edited"
	}
	return fmt.Sprintf("event(%d)", uint8(e))
}

// transitions — исчерпывающая таблица (шаг, событие). Неизвестные пары
// отклоняются, а не проваливаются молча. EventCurrencyChosen ведёт в два
// разных шага, поэтому целевой шаг выбирает обработчик, таблица отвечает
// только за легальность.
var transitions = buildTransitions()

func buildTransitions() map[Stage]map[Event]struct{} {
	allowed := map[Stage][]Event{
		StageIdle:               {},
		StageSelectingDealType:  {EventDealTypeChosen},
		StageEnteringItems:      {EventItemsEntered},
		StageSelectingCurrency:  {EventCurrencyChosen},
		StageSelectingFiat:      {EventFiatChosen},
		StageEnteringAmount:     {EventAmountEntered},
		StageShowingWarning:     {EventWarningAccepted},
		StageEnteringWallet:     {EventWalletEntered},
		StageEnteringCardNumber: {EventCardNumberEntered},
		StageEditingCardNumber:  {EventCardEdited},
	}

	seen := make(map[Event]bool, int(eventSentinel))
	table := make(map[Stage]map[Event]struct{}, len(allowed))

	for stage, events := range allowed {
		table[stage] = make(map[Event]struct{}, len(events))
		for _, ev := range events {
			if _, dup := table[stage][ev]; dup {
				panic(fmt.Sprintf("session: duplicate transition (%s, %s)", stage, ev))
			}
			table[stage][ev] = struct{}{}
			seen[ev] = true
		}
	}

	for ev := Event(0); ev < eventSentinel; ev++ {
		if !seen[ev] {
			panic(fmt.Sprintf("session: event %s is not reachable from any stage", ev))
		}
	}

	return table
}

func stageAllows(stage Stage, ev Event) bool {
	_, ok := transitions[stage][ev]
	return ok
}
