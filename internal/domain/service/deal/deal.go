// Package deal владеет машиной статусов сделки: только этот сервис
// создаёт сделку и двигает её статус.
package deal

import (
	"context"
	"fmt"

	"tg_guarantor/internal/domain"
	"tg_guarantor/internal/domain/entity"
	"tg_guarantor/internal/domain/service/payment"
	"tg_guarantor/internal/domain/service/session"
	"tg_guarantor/pkg/contextx"
	"tg_guarantor/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// idAttempts — сколько раз перегенерировать ID при коллизии,
// прежде чем сдаться.
const idAttempts = 5

type DealRepository interface {
	Create(ctx context.Context, deal *entity.Deal) error
	GetByID(ctx context.Context, id string) (*entity.Deal, error)
	Exists(ctx context.Context, id string) (bool, error)
	// SetBuyer назначает покупателя, только если он ещё не назначен.
	SetBuyer(ctx context.Context, id string, buyerID int64) error
	// UpdateStatus переводит статус, только если текущий равен from.
	UpdateStatus(ctx context.Context, id string, from, to entity.DealStatus) error
	ListForUser(ctx context.Context, userID int64) ([]entity.Deal, error)
	ListWaitingPayment(ctx context.Context) ([]entity.Deal, error)
	CountCompletedBySeller(ctx context.Context, sellerID int64) (int, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

type RequisiteRepository interface {
	Wallet(ctx context.Context, userID int64) (string, error)
}

// StatsCache кэширует счётчик завершённых сделок продавца. Ошибки кэша
// не фатальны: промах приводит к пересчёту по базе.
type StatsCache interface {
	Get(ctx context.Context, sellerID int64) (count int, ok bool, err error)
	Set(ctx context.Context, sellerID int64, count int) error
}

// Notifier — побочный канал уведомлений участникам. Доставка
// асинхронная, ошибки постановки в очередь не откатывают переход.
type Notifier interface {
	BuyerJoined(ctx context.Context, deal *entity.Deal, buyer *entity.User, buyerStats int) error
	PaymentConfirmed(ctx context.Context, deal *entity.Deal) error
	GiftSent(ctx context.Context, deal *entity.Deal) error
}

type Service struct {
	deals      DealRepository
	users      UserRepository
	requisites RequisiteRepository
	stats      StatsCache
	notifier   Notifier
	rates      payment.Rates
	shareLink  func(dealID string) string
}

// NewService собирает контроллер жизненного цикла. shareLink строит
// диплинк для второй стороны по ID сделки.
func NewService(
	deals DealRepository,
	users UserRepository,
	requisites RequisiteRepository,
	stats StatsCache,
	notifier Notifier,
	rates payment.Rates,
	shareLink func(dealID string) string,
) *Service {
	return &Service{
		deals:      deals,
		users:      users,
		requisites: requisites,
		stats:      stats,
		notifier:   notifier,
		rates:      rates,
		shareLink:  shareLink,
	}
}

// Create превращает готовый черновик в сделку: считает суммы, снимает
// снимок реквизита продавца, генерирует свободный ID с ограниченным
// числом попыток и пишет строку одной атомарной вставкой.
func (s *Service) Create(ctx context.Context, sellerID int64, draft session.Draft) (*entity.Deal, error) {
	if !draft.Complete() {
		return nil, domain.NewError(errcodes.DealDraftIncomplete, "draft is missing required fields")
	}

	quote, err := payment.Resolve(draft.Amount, s.rates)
	if err != nil {
		return nil, fmt.Errorf("payment.Resolve: %w", err)
	}

	address, err := s.requisites.Wallet(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("requisites.Wallet: %w", err)
	}

	id, err := s.freeID(ctx)
	if err != nil {
		return nil, err
	}

	deal := &entity.Deal{
		ID:             id,
		SellerID:       sellerID,
		Type:           draft.DealType,
		Items:          draft.Items,
		Currency:       draft.Currency,
		FiatCurrency:   draft.FiatCurrency,
		Amount:         draft.Amount,
		FeePercent:     s.rates.FeePercent,
		TotalAmount:    quote.TotalAmount,
		TonAmount:      quote.TonAmount,
		UsdtAmount:     quote.UsdtAmount,
		PaymentAddress: address,
		Status:         entity.StatusCreated,
		ShareLink:      s.shareLink(id),
	}

	if err := s.deals.Create(ctx, deal); err != nil {
		return nil, fmt.Errorf("deals.Create: %w", err)
	}

	dealsCreated.Inc()
	logger(ctx).Info("deal created", "deal_id", deal.ID, "seller_id", sellerID, "type", deal.Type)

	return deal, nil
}

func (s *Service) freeID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < idAttempts; attempt++ {
		id := NewID()

		exists, err := s.deals.Exists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("deals.Exists: %w", err)
		}
		if !exists {
			return id, nil
		}

		logger(ctx).Warn("deal id collision, regenerating", "deal_id", id, "attempt", attempt+1)
	}

	return "", domain.NewError(errcodes.DealIDExhausted, "could not generate a free deal id")
}

// Join назначает покупателя не более одного раза: условное обновление
// закрывает гонку двух одновременных переходов по одной ссылке.
// Возвращает сделку после перехода и счётчик успешных сделок покупателя
// для уведомления продавца.
func (s *Service) Join(ctx context.Context, dealID string, buyerID int64) (*entity.Deal, int, error) {
	deal, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		return nil, 0, fmt.Errorf("deals.GetByID: %w", err)
	}

	if deal.SellerID == buyerID {
		return nil, 0, domain.NewError(errcodes.Forbidden, "seller cannot join own deal")
	}

	if err := s.deals.SetBuyer(ctx, dealID, buyerID); err != nil {
		return nil, 0, fmt.Errorf("deals.SetBuyer: %w", err)
	}

	if err := s.deals.UpdateStatus(ctx, dealID, entity.StatusCreated, entity.StatusWaitingPayment); err != nil {
		return nil, 0, fmt.Errorf("deals.UpdateStatus: %w", err)
	}

	deal.BuyerID = &buyerID
	deal.Status = entity.StatusWaitingPayment
	dealsJoined.Inc()

	buyerStats, err := s.SellerStats(ctx, buyerID)
	if err != nil {
		logger(ctx).Error("buyer stats lookup failed", "buyer_id", buyerID, "error", err)
		buyerStats = 0
	}

	buyer, err := s.users.GetByID(ctx, buyerID)
	if err != nil {
		logger(ctx).Error("buyer lookup failed", "buyer_id", buyerID, "error", err)
		buyer = &entity.User{ID: buyerID}
	}

	if err := s.notifier.BuyerJoined(ctx, deal, buyer, buyerStats); err != nil {
		logger(ctx).Error("buyer joined notification failed", "deal_id", dealID, "error", err)
	}

	return deal, buyerStats, nil
}

// ConfirmPayment — ручное действие арбитра: переводит конкретную сделку
// в Paid. Доступно только из allow-list администраторов.
func (s *Service) ConfirmPayment(ctx context.Context, adminID int64, dealID string) (*entity.Deal, error) {
	isAdmin, err := s.users.IsAdmin(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("users.IsAdmin: %w", err)
	}
	if !isAdmin {
		return nil, domain.NewError(errcodes.Forbidden, "payment confirmation requires admin rights")
	}

	if err := s.deals.UpdateStatus(ctx, dealID, entity.StatusWaitingPayment, entity.StatusPaid); err != nil {
		return nil, fmt.Errorf("deals.UpdateStatus: %w", err)
	}

	deal, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		return nil, fmt.Errorf("deals.GetByID: %w", err)
	}

	paymentsConfirmed.Inc()
	logger(ctx).Info("payment confirmed", "deal_id", dealID, "admin_id", adminID)

	if err := s.notifier.PaymentConfirmed(ctx, deal); err != nil {
		logger(ctx).Error("payment confirmed notification failed", "deal_id", dealID, "error", err)
	}

	return deal, nil
}

// MarkGiftSent — действие продавца после оплаты: Paid -> GiftSent.
// TODO: определить триггер перехода GiftSent -> Completed (второе
// подтверждение арбитра или подтверждение покупателя) — сейчас сделка
// останавливается на GiftSent и в статистику продавца не попадает.
func (s *Service) MarkGiftSent(ctx context.Context, sellerID int64, dealID string) (*entity.Deal, error) {
	deal, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		return nil, fmt.Errorf("deals.GetByID: %w", err)
	}

	if deal.SellerID != sellerID {
		return nil, domain.NewError(errcodes.NotDealSeller, "only the seller can mark the gift as sent")
	}
	if deal.Status != entity.StatusPaid {
		return nil, domain.NewError(errcodes.DealWrongStatus, "deal is not paid yet")
	}

	if err := s.deals.UpdateStatus(ctx, dealID, entity.StatusPaid, entity.StatusGiftSent); err != nil {
		return nil, fmt.Errorf("deals.UpdateStatus: %w", err)
	}

	deal.Status = entity.StatusGiftSent

	if err := s.notifier.GiftSent(ctx, deal); err != nil {
		logger(ctx).Error("gift sent notification failed", "deal_id", dealID, "error", err)
	}

	return deal, nil
}

// Get возвращает сделку по идентификатору.
func (s *Service) Get(ctx context.Context, dealID string) (*entity.Deal, error) {
	deal, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		return nil, fmt.Errorf("deals.GetByID: %w", err)
	}
	return deal, nil
}

// ListForUser возвращает сделки, где пользователь — любая из сторон.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]entity.Deal, error) {
	deals, err := s.deals.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("deals.ListForUser: %w", err)
	}
	return deals, nil
}

// ListWaitingPayment — очередь сделок, ожидающих подтверждения оплаты,
// старые первыми. Только чтение: само подтверждение адресное.
func (s *Service) ListWaitingPayment(ctx context.Context) ([]entity.Deal, error) {
	deals, err := s.deals.ListWaitingPayment(ctx)
	if err != nil {
		return nil, fmt.Errorf("deals.ListWaitingPayment: %w", err)
	}
	return deals, nil
}

// SellerStats — счётчик завершённых сделок продавца, через кэш.
func (s *Service) SellerStats(ctx context.Context, sellerID int64) (int, error) {
	count, ok, err := s.stats.Get(ctx, sellerID)
	if err != nil {
		logger(ctx).Warn("stats cache read failed", "seller_id", sellerID, "error", err)
	}
	if ok {
		return count, nil
	}

	count, err = s.deals.CountCompletedBySeller(ctx, sellerID)
	if err != nil {
		return 0, fmt.Errorf("deals.CountCompletedBySeller: %w", err)
	}

	if err := s.stats.Set(ctx, sellerID, count); err != nil {
		logger(ctx).Warn("stats cache write failed", "seller_id", sellerID, "error", err)
	}

	return count, nil
}

// IsAdmin — проверка allow-list для транспортного слоя.
func (s *Service) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return s.users.IsAdmin(ctx, userID)
}
