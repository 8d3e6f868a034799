package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tg_guarantor/internal/domain"
	"tg_guarantor/internal/domain/entity"
	"tg_guarantor/internal/domain/service/session"
	"tg_guarantor/pkg/errcodes"
)

const testUserID int64 = 42

func newEngine() *session.Engine {
	return session.NewEngine(time.Minute)
}

func TestDealWizardWalk(t *testing.T) {
	rq := require.New(t)
	e := newEngine()

	rq.Equal(session.StageIdle, e.Stage(testUserID))

	e.BeginDeal(testUserID)
	rq.Equal(session.StageSelectingDealType, e.Stage(testUserID))

	rq.NoError(e.ChooseDealType(testUserID, string(entity.DealTypeGift)))
	rq.Equal(session.StageEnteringItems, e.Stage(testUserID))

	rq.NoError(e.SubmitItems(testUserID, "https://t.me/nft/one\nhttps://t.me/nft/two"))
	rq.Equal(session.StageSelectingCurrency, e.Stage(testUserID))

	needFiat, err := e.ChooseCurrency(testUserID, "ton")
	rq.NoError(err)
	rq.False(needFiat)
	rq.Equal(session.StageEnteringAmount, e.Stage(testUserID))

	rq.NoError(e.SubmitAmount(testUserID, "1500"))
	rq.Equal(session.StageShowingWarning, e.Stage(testUserID))

	draft, err := e.Finalize(testUserID)
	rq.NoError(err)
	rq.Equal(entity.DealTypeGift, draft.DealType)
	rq.Equal([]string{"https://t.me/nft/one", "https://t.me/nft/two"}, draft.Items)
	rq.Equal("ton", draft.Currency)
	rq.Equal("ton", draft.FiatCurrency)
	rq.InDelta(1500.0, draft.Amount, 1e-9)

	// мастер завершён, сессии больше нет
	rq.Equal(session.StageIdle, e.Stage(testUserID))
}

func TestDealWizardCardCurrencyAsksFiat(t *testing.T) {
	rq := require.New(t)
	e := newEngine()

	e.BeginDeal(testUserID)
	rq.NoError(e.ChooseDealType(testUserID, string(entity.DealTypeChannel)))
	rq.NoError(e.SubmitItems(testUserID, "https://t.me/my_channel"))

	needFiat, err := e.ChooseCurrency(testUserID, session.CurrencyCard)
	rq.NoError(err)
	rq.True(needFiat)
	rq.Equal(session.StageSelectingFiat, e.Stage(testUserID))

	rq.NoError(e.ChooseFiat(testUserID, "rub"))
	rq.Equal(session.StageEnteringAmount, e.Stage(testUserID))

	rq.NoError(e.SubmitAmount(testUserID, "250.5"))

	draft, err := e.Finalize(testUserID)
	rq.NoError(err)
	rq.Equal(session.CurrencyCard, draft.Currency)
	rq.Equal("rub", draft.FiatCurrency)
}

func TestWizardRejectsOutOfOrderEvents(t *testing.T) {
	rq := require.New(t)
	e := newEngine()

	// без активной сессии любое событие — SessionNotFound
	err := e.SubmitItems(testUserID, "https://t.me/nft/one")
	rq.True(domain.HasCode(err, errcodes.SessionNotFound))

	e.BeginDeal(testUserID)

	// сумма до выбора типа — не тот шаг
	err = e.SubmitAmount(testUserID, "100")
	rq.True(domain.HasCode(err, errcodes.SessionWrongStep))
	rq.Equal(session.StageSelectingDealType, e.Stage(testUserID))

	_, err = e.Finalize(testUserID)
	rq.True(domain.HasCode(err, errcodes.SessionWrongStep))
}

func TestValidationFailureKeepsStage(t *testing.T) {
	rq := require.New(t)
	e := newEngine()

	e.BeginDeal(testUserID)

	err := e.ChooseDealType(testUserID, "lottery")
	rq.True(domain.HasCode(err, errcodes.InvalidDealType))
	rq.Equal(session.StageSelectingDealType, e.Stage(testUserID))

	rq.NoError(e.ChooseDealType(testUserID, string(entity.DealTypeUsername)))

	err = e.SubmitItems(testUserID, "not a username")
	rq.True(domain.HasCode(err, errcodes.InvalidItems))
	rq.Equal(session.StageEnteringItems, e.Stage(testUserID))

	rq.NoError(e.SubmitItems(testUserID, "@durov"))

	_, err = e.ChooseCurrency(testUserID, "stars")
	rq.NoError(err)

	err = e.SubmitAmount(testUserID, "not-a-number")
	rq.True(domain.HasCode(err, errcodes.InvalidAmount))
	rq.Equal(session.StageEnteringAmount, e.Stage(testUserID))

	err = e.SubmitAmount(testUserID, "-5")
	rq.True(domain.HasCode(err, errcodes.InvalidAmount))
	rq.Equal(session.StageEnteringAmount, e.Stage(testUserID))
}

func TestWalletWizard(t *testing.T) {
	rq := require.New(t)
	e := newEngine()

	e.BeginWallet(testUserID)
	rq.Equal(session.StageEnteringWallet, e.Stage(testUserID))

	// невалидный ввод не съедает сессию: можно ввести ещё раз
	_, err := e.SubmitWallet(testUserID, "ABC")
	rq.True(domain.HasCode(err, errcodes.InvalidWallet))
	rq.Equal(session.StageEnteringWallet, e.Stage(testUserID))

	wallet := "UQAeQikkaB6Zz0hWF2IVjsMwK8Ldvtv4jYHPJ3KJDpzoWS1M"
	got, err := e.SubmitWallet(testUserID, wallet)
	rq.NoError(err)
	rq.Equal(wallet, got)
	rq.Equal(session.StageIdle, e.Stage(testUserID))
}

func TestCardWizard(t *testing.T) {
	rq := require.New(t)
	e := newEngine()

	e.BeginCard(testUserID, "rub")

	_, _, err := e.SubmitCardNumber(testUserID, "1234")
	rq.True(domain.HasCode(err, errcodes.InvalidCardNumber))
	rq.Equal(session.StageEnteringCardNumber, e.Stage(testUserID))

	number, currency, err := e.SubmitCardNumber(testUserID, "1234 5678 9012 3456")
	rq.NoError(err)
	rq.Equal("1234567890123456", number)
	rq.Equal("rub", currency)
	rq.Equal(session.StageIdle, e.Stage(testUserID))
}

func TestCardEditWizard(t *testing.T) {
	rq := require.New(t)
	e := newEngine()

	e.BeginCardEdit(testUserID, 7)

	cardID, number, err := e.SubmitCardEdit(testUserID, "9999 8888 7777 6666")
	rq.NoError(err)
	rq.Equal(int64(7), cardID)
	rq.Equal("9999888877776666", number)
	rq.Equal(session.StageIdle, e.Stage(testUserID))
}

func TestBeginRestartsWizard(t *testing.T) {
	rq := require.New(t)
	e := newEngine()

	e.BeginDeal(testUserID)
	rq.NoError(e.ChooseDealType(testUserID, string(entity.DealTypeGift)))
	rq.NoError(e.SubmitItems(testUserID, "https://t.me/nft/one"))

	// повторный запуск сбрасывает накопленный черновик
	e.BeginDeal(testUserID)
	rq.Equal(session.StageSelectingDealType, e.Stage(testUserID))

	rq.NoError(e.ChooseDealType(testUserID, string(entity.DealTypePremium)))
	err := e.SubmitItems(testUserID, "3 months premium")
	rq.NoError(err)
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	rq := require.New(t)
	e := newEngine()

	other := testUserID + 1

	e.BeginDeal(testUserID)
	e.BeginWallet(other)

	rq.Equal(session.StageSelectingDealType, e.Stage(testUserID))
	rq.Equal(session.StageEnteringWallet, e.Stage(other))

	e.Clear(testUserID)
	rq.Equal(session.StageIdle, e.Stage(testUserID))
	rq.Equal(session.StageEnteringWallet, e.Stage(other))
}
