package persistence_test

import (
	"context"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"tg_guarantor/internal/domain"
	"tg_guarantor/internal/domain/entity"
	"tg_guarantor/internal/infrastructure/persistence"
	"tg_guarantor/pkg/dbtest"
	"tg_guarantor/pkg/errcodes"
)

const defaultWallet = "UQAeQikkaB6Zz0hWF2IVjsMwK8Ldvtv4jYHPJ3KJDpzoWS1M"

// testDB подключается к базе из TEST_PG_DSN и накатывает схему.
// Без переменной окружения тест пропускается.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_PG_DSN")
	if dsn == "" {
		t.Skip("TEST_PG_DSN is not set")
	}

	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`DROP TABLE IF EXISTS deals, bank_cards, requisites, admins, users CASCADE`)
	require.NoError(t, err)

	require.NoError(t, dbtest.MigrateFromFile(db, "../../../migrations/0001_init.sql"))

	return db
}

func TestUserRepository(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	db := testDB(t)

	users := persistence.NewUserRepository(db)

	_, err := users.GetByID(ctx, 100)
	rq.True(domain.HasCode(err, errcodes.UserNotFound))

	rq.NoError(users.Add(ctx, &entity.User{ID: 100, Username: "seller", FirstName: "Ivan", Language: entity.LanguageRU}))

	user, err := users.GetByID(ctx, 100)
	rq.NoError(err)
	rq.Equal("seller", user.Username)
	rq.Equal(entity.LanguageRU, user.Language)

	// язык переживает повторную регистрацию
	rq.NoError(users.SetLanguage(ctx, 100, entity.LanguageEN))
	rq.NoError(users.Add(ctx, &entity.User{ID: 100, Username: "seller2", FirstName: "Ivan", Language: entity.LanguageRU}))

	lang, err := users.Language(ctx, 100)
	rq.NoError(err)
	rq.Equal(entity.LanguageEN, lang)

	// незнакомый пользователь читается с языком по умолчанию
	lang, err = users.Language(ctx, 999)
	rq.NoError(err)
	rq.Equal(entity.LanguageRU, lang)

	isAdmin, err := users.IsAdmin(ctx, 100)
	rq.NoError(err)
	rq.False(isAdmin)

	rq.NoError(users.AddAdmin(ctx, 100, "seller"))

	isAdmin, err = users.IsAdmin(ctx, 100)
	rq.NoError(err)
	rq.True(isAdmin)

	admins, err := users.ListAdmins(ctx)
	rq.NoError(err)
	rq.Equal([]int64{100}, admins)
}

func TestRequisiteRepository(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	db := testDB(t)

	users := persistence.NewUserRepository(db)
	requisites := persistence.NewRequisiteRepository(db, defaultWallet)

	rq.NoError(users.Add(ctx, &entity.User{ID: 100, Language: entity.LanguageRU}))

	// без своего кошелька отдаётся сервисный
	wallet, err := requisites.Wallet(ctx, 100)
	rq.NoError(err)
	rq.Equal(defaultWallet, wallet)

	custom, err := requisites.HasCustomWallet(ctx, 100)
	rq.NoError(err)
	rq.False(custom)

	own := "AAAeQikkaB6Zz0hWF2IVjsMwK8Ldvtv4jYHPJ3KJDpzoWS1M"
	rq.NoError(requisites.SetWallet(ctx, 100, own))

	wallet, err = requisites.Wallet(ctx, 100)
	rq.NoError(err)
	rq.Equal(own, wallet)

	// карты
	cardID, err := requisites.AddCard(ctx, 100, "1234567890123456", "rub")
	rq.NoError(err)

	card, err := requisites.GetCard(ctx, 100, cardID)
	rq.NoError(err)
	rq.Equal("1234567890123456", card.CardNumber)
	rq.Equal("rub", card.Currency)

	// карта видна только владельцу
	_, err = requisites.GetCard(ctx, 200, cardID)
	rq.True(domain.HasCode(err, errcodes.CardNotFound))

	rq.NoError(requisites.UpdateCardNumber(ctx, 100, cardID, "9999888877776666"))

	cards, err := requisites.ListCards(ctx, 100)
	rq.NoError(err)
	rq.Len(cards, 1)
	rq.Equal("9999888877776666", cards[0].CardNumber)

	err = requisites.DeleteCard(ctx, 200, cardID)
	rq.True(domain.HasCode(err, errcodes.CardNotFound))

	rq.NoError(requisites.DeleteCard(ctx, 100, cardID))

	cards, err = requisites.ListCards(ctx, 100)
	rq.NoError(err)
	rq.Empty(cards)
}

func TestDealRepository(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	db := testDB(t)

	users := persistence.NewUserRepository(db)
	deals := persistence.NewDealRepository(db)

	rq.NoError(users.Add(ctx, &entity.User{ID: 100, Language: entity.LanguageRU}))
	rq.NoError(users.Add(ctx, &entity.User{ID: 200, Language: entity.LanguageRU}))

	deal := &entity.Deal{
		ID:             "DEAL0001",
		SellerID:       100,
		Type:           entity.DealTypeGift,
		Items:          []string{"https://t.me/nft/one", "https://t.me/nft/two"},
		Currency:       "ton",
		FiatCurrency:   "ton",
		Amount:         1000,
		FeePercent:     3,
		TotalAmount:    1030,
		TonAmount:      54.59,
		UsdtAmount:     42.39,
		PaymentAddress: defaultWallet,
		Status:         entity.StatusCreated,
		ShareLink:      "https://t.me/testbot?start=deal_DEAL0001",
	}
	rq.NoError(deals.Create(ctx, deal))

	// повторная вставка того же ID — коллизия
	err := deals.Create(ctx, deal)
	rq.True(domain.HasCode(err, errcodes.DealAlreadyTaken))

	got, err := deals.GetByID(ctx, "DEAL0001")
	rq.NoError(err)
	rq.Equal([]string{"https://t.me/nft/one", "https://t.me/nft/two"}, got.Items)
	rq.Nil(got.BuyerID)
	rq.Equal(entity.StatusCreated, got.Status)

	exists, err := deals.Exists(ctx, "DEAL0001")
	rq.NoError(err)
	rq.True(exists)

	rq.NoError(deals.SetBuyer(ctx, "DEAL0001", 200))

	// покупатель назначается не более одного раза
	err = deals.SetBuyer(ctx, "DEAL0001", 300)
	rq.True(domain.HasCode(err, errcodes.DealAlreadyTaken))

	err = deals.SetBuyer(ctx, "NOPE0000", 200)
	rq.True(domain.HasCode(err, errcodes.DealNotFound))

	rq.NoError(deals.UpdateStatus(ctx, "DEAL0001", entity.StatusCreated, entity.StatusWaitingPayment))

	// из другого статуса переход отклоняется
	err = deals.UpdateStatus(ctx, "DEAL0001", entity.StatusCreated, entity.StatusWaitingPayment)
	rq.True(domain.HasCode(err, errcodes.DealWrongStatus))

	waiting, err := deals.ListWaitingPayment(ctx)
	rq.NoError(err)
	rq.Len(waiting, 1)
	rq.Equal("DEAL0001", waiting[0].ID)

	forSeller, err := deals.ListForUser(ctx, 100)
	rq.NoError(err)
	rq.Len(forSeller, 1)

	forBuyer, err := deals.ListForUser(ctx, 200)
	rq.NoError(err)
	rq.Len(forBuyer, 1)

	count, err := deals.CountCompletedBySeller(ctx, 100)
	rq.NoError(err)
	rq.Equal(0, count)

	// смена кошелька продавца не трогает адрес в уже созданной сделке
	requisites := persistence.NewRequisiteRepository(db, defaultWallet)
	rq.NoError(requisites.SetWallet(ctx, 100, "AAAeQikkaB6Zz0hWF2IVjsMwK8Ldvtv4jYHPJ3KJDpzoWS1M"))

	got, err = deals.GetByID(ctx, "DEAL0001")
	rq.NoError(err)
	rq.Equal(defaultWallet, got.PaymentAddress)
}
