// Package session держит по одному эфемерному черновику на активного
// пользователя и двигает мастер создания сделки (и мастер реквизитов)
// от свободного текста и нажатий кнопок к готовому черновику сделки.
package session

import (
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"tg_guarantor/internal/domain"
	"tg_guarantor/internal/domain/entity"
	"tg_guarantor/pkg/errcodes"
)

// CurrencyCard — выбор расчёта через карту: добавляет шаг выбора фиата.
const CurrencyCard = "card"

const lockStripes = 64

// Engine — движок мастера. Сессии лежат в go-cache с TTL по простою,
// так что карта не растёт бесконечно; мутации одного пользователя
// сериализуются через полосатые мьютексы по его ID.
type Engine struct {
	sessions *cache.Cache
	locks    [lockStripes]sync.Mutex
}

type state struct {
	Stage Stage
	Draft Draft
}

// NewEngine создаёт движок. idleTTL — срок жизни брошенной сессии.
func NewEngine(idleTTL time.Duration) *Engine {
	return &Engine{
		sessions: cache.New(idleTTL, idleTTL),
	}
}

func (e *Engine) lock(userID int64) *sync.Mutex {
	return &e.locks[uint64(userID)%lockStripes]
}

func (e *Engine) load(userID int64) state {
	if v, ok := e.sessions.Get(strconv.FormatInt(userID, 10)); ok {
		return v.(state)
	}
	return state{Stage: StageIdle}
}

func (e *Engine) store(userID int64, s state) {
	e.sessions.SetDefault(strconv.FormatInt(userID, 10), s)
}

// Stage возвращает текущий шаг пользователя (StageIdle — мастера нет).
func (e *Engine) Stage(userID int64) Stage {
	mu := e.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	return e.load(userID).Stage
}

// Clear сбрасывает сессию пользователя.
func (e *Engine) Clear(userID int64) {
	mu := e.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	e.sessions.Delete(strconv.FormatInt(userID, 10))
}

// begin перезапускает мастер с указанного шага. Начало мастера разрешено
// из любого состояния: пользователь всегда может начать заново.
func (e *Engine) begin(userID int64, stage Stage, draft Draft) {
	mu := e.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	e.store(userID, state{Stage: stage, Draft: draft})
}

// advance применяет событие к сессии. Нелегальная пара (шаг, событие)
// отклоняется; ошибка валидации внутри fn оставляет шаг и черновик
// нетронутыми.
func (e *Engine) advance(userID int64, ev Event, fn func(s *state) error) error {
	mu := e.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	s := e.load(userID)
	if s.Stage == StageIdle {
		return domain.NewError(errcodes.SessionNotFound, "no active wizard")
	}
	if !stageAllows(s.Stage, ev) {
		return domain.NewError(errcodes.SessionWrongStep, "event "+ev.String()+" is not allowed at "+s.Stage.String())
	}

	if err := fn(&s); err != nil {
		return err
	}

	e.store(userID, s)
	return nil
}

// BeginDeal запускает мастер создания сделки.
func (e *Engine) BeginDeal(userID int64) {
	e.begin(userID, StageSelectingDealType, Draft{})
}

// ChooseDealType фиксирует тип сделки и переводит к вводу позиций.
func (e *Engine) ChooseDealType(userID int64, dealType string) error {
	return e.advance(userID, EventDealTypeChosen, func(s *state) error {
		t := entity.DealType(dealType)
		if !t.Valid() {
			return domain.NewError(errcodes.InvalidDealType, "unknown deal type "+dealType)
		}
		s.Draft.DealType = t
		s.Stage = StageEnteringItems
		return nil
	})
}

// SubmitItems валидирует позиции по грамматике типа сделки.
func (e *Engine) SubmitItems(userID int64, text string) error {
	return e.advance(userID, EventItemsEntered, func(s *state) error {
		items, err := ParseItems(s.Draft.DealType, text)
		if err != nil {
			return err
		}
		s.Draft.Items = items
		s.Stage = StageSelectingCurrency
		return nil
	})
}

// ChooseCurrency фиксирует расчётную валюту. Для карты добавляется шаг
// выбора фиатной валюты, иначе фиат совпадает с выбором и мастер
// переходит сразу к сумме. Возвращает true, если нужен выбор фиата.
func (e *Engine) ChooseCurrency(userID int64, currency string) (needFiat bool, err error) {
	err = e.advance(userID, EventCurrencyChosen, func(s *state) error {
		s.Draft.Currency = currency
		if currency == CurrencyCard {
			s.Stage = StageSelectingFiat
			needFiat = true
			return nil
		}
		s.Draft.FiatCurrency = currency
		s.Stage = StageEnteringAmount
		return nil
	})
	return needFiat, err
}

// ChooseFiat фиксирует фиатную валюту карточного расчёта.
func (e *Engine) ChooseFiat(userID int64, fiat string) error {
	return e.advance(userID, EventFiatChosen, func(s *state) error {
		s.Draft.FiatCurrency = fiat
		s.Stage = StageEnteringAmount
		return nil
	})
}

// SubmitAmount разбирает сумму и переводит к предупреждению.
func (e *Engine) SubmitAmount(userID int64, text string) error {
	return e.advance(userID, EventAmountEntered, func(s *state) error {
		amount, err := ParseAmount(text)
		if err != nil {
			return err
		}
		s.Draft.Amount = amount
		s.Stage = StageShowingWarning
		return nil
	})
}

// Finalize завершает мастер и отдаёт готовый черновик. Сессия
// очищается независимо от того, получится ли создать сделку.
func (e *Engine) Finalize(userID int64) (Draft, error) {
	var draft Draft

	err := e.advance(userID, EventWarningAccepted, func(s *state) error {
		if !s.Draft.Complete() {
			return domain.NewError(errcodes.DealDraftIncomplete, "draft is missing required fields")
		}
		draft = s.Draft
		return nil
	})
	if err != nil {
		return Draft{}, err
	}

	e.Clear(userID)
	return draft, nil
}

// BeginWallet запускает ввод TON-кошелька.
func (e *Engine) BeginWallet(userID int64) {
	e.begin(userID, StageEnteringWallet, Draft{})
}

// SubmitWallet валидирует кошелёк и завершает мастер реквизитов.
func (e *Engine) SubmitWallet(userID int64, text string) (string, error) {
	err := e.advance(userID, EventWalletEntered, func(*state) error {
		return ValidateWallet(text)
	})
	if err != nil {
		return "", err
	}

	e.Clear(userID)
	return text, nil
}

// BeginCard запускает ввод номера карты в выбранной валюте.
func (e *Engine) BeginCard(userID int64, currency string) {
	e.begin(userID, StageEnteringCardNumber, Draft{CardCurrency: currency})
}

// SubmitCardNumber валидирует номер карты и завершает мастер.
func (e *Engine) SubmitCardNumber(userID int64, text string) (number, currency string, err error) {
	err = e.advance(userID, EventCardNumberEntered, func(s *state) error {
		normalized, err := NormalizeCardNumber(text)
		if err != nil {
			return err
		}
		number = normalized
		currency = s.Draft.CardCurrency
		return nil
	})
	if err != nil {
		return "", "", err
	}

	e.Clear(userID)
	return number, currency, nil
}

// BeginCardEdit запускает замену номера существующей карты.
func (e *Engine) BeginCardEdit(userID, cardID int64) {
	e.begin(userID, StageEditingCardNumber, Draft{CardID: cardID})
}

// SubmitCardEdit валидирует новый номер и возвращает ID карты.
func (e *Engine) SubmitCardEdit(userID int64, text string) (cardID int64, number string, err error) {
	err = e.advance(userID, EventCardEdited, func(s *state) error {
		normalized, err := NormalizeCardNumber(text)
		if err != nil {
			return err
		}
		number = normalized
		cardID = s.Draft.CardID
		return nil
	})
	if err != nil {
		return 0, "", err
	}

	e.Clear(userID)
	return cardID, number, nil
}
