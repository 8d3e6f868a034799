package deal

import (
	"context"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"tg_guarantor/internal/domain"
	"tg_guarantor/internal/domain/entity"
	"tg_guarantor/internal/domain/service/payment"
	"tg_guarantor/internal/domain/service/session"
	"tg_guarantor/pkg/errcodes"
)

var testRates = payment.Rates{ //nolint:gochecknoglobals
	TonRate:    0.053,
	UsdtRate:   24.3,
	FeePercent: 3,
}

// fakeDealRepo повторяет контракт хранилища в памяти, включая
// условность SetBuyer и UpdateStatus.
type fakeDealRepo struct {
	mu    sync.Mutex
	deals map[string]*entity.Deal

	// existsAlways имитирует тотальную коллизию ID
	existsAlways bool
}

func newFakeDealRepo() *fakeDealRepo {
	return &fakeDealRepo{deals: make(map[string]*entity.Deal)}
}

func (r *fakeDealRepo) Create(_ context.Context, deal *entity.Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.deals[deal.ID]; ok {
		return domain.NewError(errcodes.DealAlreadyTaken, "deal id is taken")
	}
	clone := *deal
	r.deals[deal.ID] = &clone
	return nil
}

func (r *fakeDealRepo) GetByID(_ context.Context, id string) (*entity.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deal, ok := r.deals[id]
	if !ok {
		return nil, domain.NewError(errcodes.DealNotFound, "deal not found")
	}
	clone := *deal
	return &clone, nil
}

func (r *fakeDealRepo) Exists(_ context.Context, id string) (bool, error) {
	if r.existsAlways {
		return true, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.deals[id]
	return ok, nil
}

func (r *fakeDealRepo) SetBuyer(_ context.Context, id string, buyerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	deal, ok := r.deals[id]
	if !ok {
		return domain.NewError(errcodes.DealNotFound, "deal not found")
	}
	if deal.BuyerID != nil {
		return domain.NewError(errcodes.DealAlreadyTaken, "buyer already set")
	}
	deal.BuyerID = &buyerID
	return nil
}

func (r *fakeDealRepo) UpdateStatus(_ context.Context, id string, from, to entity.DealStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	deal, ok := r.deals[id]
	if !ok {
		return domain.NewError(errcodes.DealNotFound, "deal not found")
	}
	if deal.Status != from {
		return domain.NewError(errcodes.DealWrongStatus, "unexpected current status")
	}
	deal.Status = to
	return nil
}

func (r *fakeDealRepo) ListForUser(_ context.Context, userID int64) ([]entity.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entity.Deal
	for _, deal := range r.deals {
		if deal.SellerID == userID || (deal.BuyerID != nil && *deal.BuyerID == userID) {
			out = append(out, *deal)
		}
	}
	return out, nil
}

func (r *fakeDealRepo) ListWaitingPayment(_ context.Context) ([]entity.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entity.Deal
	for _, deal := range r.deals {
		if deal.Status == entity.StatusWaitingPayment {
			out = append(out, *deal)
		}
	}
	return out, nil
}

func (r *fakeDealRepo) CountCompletedBySeller(_ context.Context, sellerID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, deal := range r.deals {
		if deal.SellerID == sellerID && deal.Status == entity.StatusCompleted {
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	users  map[int64]*entity.User
	admins map[int64]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[int64]*entity.User),
		admins: make(map[int64]bool),
	}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.NewError(errcodes.UserNotFound, "user not found")
	}
	return user, nil
}

func (r *fakeUserRepo) IsAdmin(_ context.Context, userID int64) (bool, error) {
	return r.admins[userID], nil
}

type fakeRequisiteRepo struct {
	wallet string
}

func (r *fakeRequisiteRepo) Wallet(context.Context, int64) (string, error) {
	return r.wallet, nil
}

type fakeStatsCache struct {
	values map[int64]int
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{values: make(map[int64]int)}
}

func (c *fakeStatsCache) Get(_ context.Context, sellerID int64) (int, bool, error) {
	v, ok := c.values[sellerID]
	return v, ok, nil
}

func (c *fakeStatsCache) Set(_ context.Context, sellerID int64, count int) error {
	c.values[sellerID] = count
	return nil
}

type notification struct {
	kind   string
	dealID string
}

type fakeNotifier struct {
	sent []notification
}

func (n *fakeNotifier) BuyerJoined(_ context.Context, deal *entity.Deal, _ *entity.User, _ int) error {
	n.sent = append(n.sent, notification{kind: "buyer_joined", dealID: deal.ID})
	return nil
}

func (n *fakeNotifier) PaymentConfirmed(_ context.Context, deal *entity.Deal) error {
	n.sent = append(n.sent, notification{kind: "payment_confirmed", dealID: deal.ID})
	return nil
}

func (n *fakeNotifier) GiftSent(_ context.Context, deal *entity.Deal) error {
	n.sent = append(n.sent, notification{kind: "gift_sent", dealID: deal.ID})
	return nil
}

type fixture struct {
	svc      *Service
	deals    *fakeDealRepo
	users    *fakeUserRepo
	stats    *fakeStatsCache
	notifier *fakeNotifier
}

func newFixture() *fixture {
	deals := newFakeDealRepo()
	users := newFakeUserRepo()
	stats := newFakeStatsCache()
	notifier := &fakeNotifier{}

	svc := NewService(
		deals,
		users,
		&fakeRequisiteRepo{wallet: "UQAeQikkaB6Zz0hWF2IVjsMwK8Ldvtv4jYHPJ3KJDpzoWS1M"},
		stats,
		notifier,
		testRates,
		func(dealID string) string { return "https://t.me/testbot?start=deal_" + dealID },
	)

	return &fixture{svc: svc, deals: deals, users: users, stats: stats, notifier: notifier}
}

func testDraft() session.Draft {
	return session.Draft{
		DealType:     entity.DealTypeGift,
		Items:        []string{"https://t.me/nft/one", "https://t.me/nft/two"},
		Currency:     "ton",
		FiatCurrency: "ton",
		Amount:       1000,
	}
}

func TestCreate(t *testing.T) {
	rq := require.New(t)
	f := newFixture()
	ctx := context.Background()

	deal, err := f.svc.Create(ctx, 100, testDraft())
	rq.NoError(err)

	rq.Regexp(regexp.MustCompile(`^[A-Z0-9]{8}$`), deal.ID)
	rq.Equal(int64(100), deal.SellerID)
	rq.Nil(deal.BuyerID)
	rq.Equal(entity.StatusCreated, deal.Status)
	rq.Equal([]string{"https://t.me/nft/one", "https://t.me/nft/two"}, deal.Items)

	// суммы — снимок на момент создания
	rq.InDelta(1030.0, deal.TotalAmount, 1e-9)
	rq.InDelta(54.59, deal.TonAmount, 1e-9)
	rq.InDelta(42.39, deal.UsdtAmount, 1e-9)
	rq.InDelta(3.0, deal.FeePercent, 1e-9)

	rq.Equal("UQAeQikkaB6Zz0hWF2IVjsMwK8Ldvtv4jYHPJ3KJDpzoWS1M", deal.PaymentAddress)
	rq.Equal("https://t.me/testbot?start=deal_"+deal.ID, deal.ShareLink)

	stored, err := f.svc.Get(ctx, deal.ID)
	rq.NoError(err)
	rq.Equal(deal.ID, stored.ID)
}

func TestPaymentAddressIsSnapshot(t *testing.T) {
	rq := require.New(t)

	deals := newFakeDealRepo()
	requisites := &fakeRequisiteRepo{wallet: "UQAeQikkaB6Zz0hWF2IVjsMwK8Ldvtv4jYHPJ3KJDpzoWS1M"}

	svc := NewService(
		deals,
		newFakeUserRepo(),
		requisites,
		newFakeStatsCache(),
		&fakeNotifier{},
		testRates,
		func(dealID string) string { return "https://t.me/testbot?start=deal_" + dealID },
	)

	ctx := context.Background()

	deal, err := svc.Create(ctx, 100, testDraft())
	rq.NoError(err)
	rq.Equal("UQAeQikkaB6Zz0hWF2IVjsMwK8Ldvtv4jYHPJ3KJDpzoWS1M", deal.PaymentAddress)

	// продавец сменил кошелёк после создания — адрес сделки не меняется
	requisites.wallet = "AAAeQikkaB6Zz0hWF2IVjsMwK8Ldvtv4jYHPJ3KJDpzoWS1M"

	got, err := svc.Get(ctx, deal.ID)
	rq.NoError(err)
	rq.Equal("UQAeQikkaB6Zz0hWF2IVjsMwK8Ldvtv4jYHPJ3KJDpzoWS1M", got.PaymentAddress)

	// новые сделки снимают уже новый адрес
	fresh, err := svc.Create(ctx, 100, testDraft())
	rq.NoError(err)
	rq.Equal("AAAeQikkaB6Zz0hWF2IVjsMwK8Ldvtv4jYHPJ3KJDpzoWS1M", fresh.PaymentAddress)
}

func TestCreateIncompleteDraft(t *testing.T) {
	rq := require.New(t)
	f := newFixture()

	draft := testDraft()
	draft.Items = nil

	_, err := f.svc.Create(context.Background(), 100, draft)
	rq.True(domain.HasCode(err, errcodes.DealDraftIncomplete))
}

func TestCreateIDCollisionExhausted(t *testing.T) {
	rq := require.New(t)
	f := newFixture()
	f.deals.existsAlways = true

	_, err := f.svc.Create(context.Background(), 100, testDraft())
	rq.True(domain.HasCode(err, errcodes.DealIDExhausted))
}

func TestJoin(t *testing.T) {
	rq := require.New(t)
	f := newFixture()
	ctx := context.Background()

	f.users.users[200] = &entity.User{ID: 200, Username: "buyer"}

	deal, err := f.svc.Create(ctx, 100, testDraft())
	rq.NoError(err)

	joined, buyerStats, err := f.svc.Join(ctx, deal.ID, 200)
	rq.NoError(err)
	rq.Equal(entity.StatusWaitingPayment, joined.Status)
	rq.NotNil(joined.BuyerID)
	rq.Equal(int64(200), *joined.BuyerID)
	rq.Equal(0, buyerStats)

	rq.Equal([]notification{{kind: "buyer_joined", dealID: deal.ID}}, f.notifier.sent)
}

func TestJoinOwnDealForbidden(t *testing.T) {
	rq := require.New(t)
	f := newFixture()
	ctx := context.Background()

	deal, err := f.svc.Create(ctx, 100, testDraft())
	rq.NoError(err)

	_, _, err = f.svc.Join(ctx, deal.ID, 100)
	rq.True(domain.HasCode(err, errcodes.Forbidden))
}

func TestJoinAtMostOnce(t *testing.T) {
	rq := require.New(t)
	f := newFixture()
	ctx := context.Background()

	f.users.users[200] = &entity.User{ID: 200}

	deal, err := f.svc.Create(ctx, 100, testDraft())
	rq.NoError(err)

	_, _, err = f.svc.Join(ctx, deal.ID, 200)
	rq.NoError(err)

	// второй покупатель по той же ссылке получает отказ
	_, _, err = f.svc.Join(ctx, deal.ID, 300)
	rq.True(domain.HasCode(err, errcodes.DealAlreadyTaken))
}

func TestJoinUnknownDeal(t *testing.T) {
	rq := require.New(t)
	f := newFixture()

	_, _, err := f.svc.Join(context.Background(), "NOPE0000", 200)
	rq.True(domain.HasCode(err, errcodes.DealNotFound))
}

func TestConfirmPayment(t *testing.T) {
	rq := require.New(t)
	f := newFixture()
	ctx := context.Background()

	f.users.users[200] = &entity.User{ID: 200}
	f.users.admins[900] = true

	deal, err := f.svc.Create(ctx, 100, testDraft())
	rq.NoError(err)

	_, _, err = f.svc.Join(ctx, deal.ID, 200)
	rq.NoError(err)

	confirmed, err := f.svc.ConfirmPayment(ctx, 900, deal.ID)
	rq.NoError(err)
	rq.Equal(entity.StatusPaid, confirmed.Status)

	// повторное подтверждение — уже не тот статус
	_, err = f.svc.ConfirmPayment(ctx, 900, deal.ID)
	rq.True(domain.HasCode(err, errcodes.DealWrongStatus))
}

func TestConfirmPaymentRequiresAdmin(t *testing.T) {
	rq := require.New(t)
	f := newFixture()
	ctx := context.Background()

	f.users.users[200] = &entity.User{ID: 200}

	deal, err := f.svc.Create(ctx, 100, testDraft())
	rq.NoError(err)

	_, _, err = f.svc.Join(ctx, deal.ID, 200)
	rq.NoError(err)

	_, err = f.svc.ConfirmPayment(ctx, 200, deal.ID)
	rq.True(domain.HasCode(err, errcodes.Forbidden))

	// статус не двинулся
	got, err := f.svc.Get(ctx, deal.ID)
	rq.NoError(err)
	rq.Equal(entity.StatusWaitingPayment, got.Status)
}

func TestConfirmPaymentBeforeJoin(t *testing.T) {
	rq := require.New(t)
	f := newFixture()
	ctx := context.Background()

	f.users.admins[900] = true

	deal, err := f.svc.Create(ctx, 100, testDraft())
	rq.NoError(err)

	_, err = f.svc.ConfirmPayment(ctx, 900, deal.ID)
	rq.True(domain.HasCode(err, errcodes.DealWrongStatus))
}

func TestMarkGiftSent(t *testing.T) {
	rq := require.New(t)
	f := newFixture()
	ctx := context.Background()

	f.users.users[200] = &entity.User{ID: 200}
	f.users.admins[900] = true

	deal, err := f.svc.Create(ctx, 100, testDraft())
	rq.NoError(err)

	_, _, err = f.svc.Join(ctx, deal.ID, 200)
	rq.NoError(err)

	_, err = f.svc.ConfirmPayment(ctx, 900, deal.ID)
	rq.NoError(err)

	sent, err := f.svc.MarkGiftSent(ctx, 100, deal.ID)
	rq.NoError(err)
	rq.Equal(entity.StatusGiftSent, sent.Status)

	// передача подарка не завершает сделку автоматически
	got, err := f.svc.Get(ctx, deal.ID)
	rq.NoError(err)
	rq.Equal(entity.StatusGiftSent, got.Status)
}

func TestMarkGiftSentGuards(t *testing.T) {
	rq := require.New(t)
	f := newFixture()
	ctx := context.Background()

	f.users.users[200] = &entity.User{ID: 200}

	deal, err := f.svc.Create(ctx, 100, testDraft())
	rq.NoError(err)

	// до оплаты отправлять нечего
	_, err = f.svc.MarkGiftSent(ctx, 100, deal.ID)
	rq.True(domain.HasCode(err, errcodes.DealWrongStatus))

	// чужую сделку пометить нельзя
	_, err = f.svc.MarkGiftSent(ctx, 200, deal.ID)
	rq.True(domain.HasCode(err, errcodes.NotDealSeller))
}

func TestSellerStats(t *testing.T) {
	rq := require.New(t)
	f := newFixture()
	ctx := context.Background()

	f.deals.deals["DONE0001"] = &entity.Deal{ID: "DONE0001", SellerID: 100, Status: entity.StatusCompleted}
	f.deals.deals["DONE0002"] = &entity.Deal{ID: "DONE0002", SellerID: 100, Status: entity.StatusCompleted}
	f.deals.deals["OPEN0001"] = &entity.Deal{ID: "OPEN0001", SellerID: 100, Status: entity.StatusGiftSent}

	count, err := f.svc.SellerStats(ctx, 100)
	rq.NoError(err)
	rq.Equal(2, count)

	// результат закэширован: прямое изменение базы не видно до истечения TTL
	f.deals.deals["DONE0003"] = &entity.Deal{ID: "DONE0003", SellerID: 100, Status: entity.StatusCompleted}

	count, err = f.svc.SellerStats(ctx, 100)
	rq.NoError(err)
	rq.Equal(2, count)
}

func TestNewIDFormat(t *testing.T) {
	rq := require.New(t)

	pattern := regexp.MustCompile(`^[A-Z0-9]{8}$`)
	for i := 0; i < 100; i++ {
		rq.Regexp(pattern, NewID())
	}
}
