package entity

import "time"

// DealStatus — статус сделки. Меняется только вперёд, откатов нет.
type DealStatus string

const (
	StatusCreated        DealStatus = "created"
	StatusWaitingPayment DealStatus = "waiting_payment"
	StatusPaid           DealStatus = "paid"
	StatusGiftSent       DealStatus = "gift_sent"
	StatusCompleted      DealStatus = "completed"
)

// statusTransitions — какие переходы статуса легальны.
// Перехода в StatusCompleted нет ни у одного триггера:
// статус существует и учитывается в статистике продавца,
// но действие, которое его выставляет, продуктом не определено.
var statusTransitions = map[DealStatus][]DealStatus{
	StatusCreated:        {StatusWaitingPayment},
	StatusWaitingPayment: {StatusPaid},
	StatusPaid:           {StatusGiftSent},
	StatusGiftSent:       {},
	StatusCompleted:      {},
}

// CanTransition сообщает, разрешён ли переход from -> to.
func (s DealStatus) CanTransition(to DealStatus) bool {
	for _, next := range statusTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s DealStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// DealType определяет грамматику валидации позиций сделки.
type DealType string

const (
	DealTypeGift     DealType = "gift"
	DealTypeChannel  DealType = "channel"
	DealTypeUsername DealType = "username"
	DealTypePremium  DealType = "premium"
)

func (t DealType) Valid() bool {
	switch t {
	case DealTypeGift, DealTypeChannel, DealTypeUsername, DealTypePremium:
		return true
	}
	return false
}

// Deal — центральная сущность: эскроу-обмен между продавцом и покупателем.
type Deal struct {
	ID           string     `json:"id"`       // 8 символов [A-Z0-9]
	SellerID     int64      `json:"seller_id"`
	BuyerID      *int64     `json:"buyer_id,omitempty"` // Выставляется ровно один раз
	Type         DealType   `json:"deal_type"`
	Items        []string   `json:"items"` // Порядок сохраняется
	Currency     string     `json:"currency"`
	FiatCurrency string     `json:"fiat_currency"`
	Amount       float64    `json:"amount"`
	FeePercent   float64    `json:"fee_percent"` // Снимок глобальной комиссии на момент создания
	TotalAmount  float64    `json:"total_amount"`
	TonAmount    float64    `json:"ton_amount"`
	UsdtAmount   float64    `json:"usdt_amount"`
	// PaymentAddress — снимок реквизита продавца на момент создания.
	// Не меняется, даже если продавец потом сменит кошелёк: покупатель,
	// уже увидевший адрес, не может быть перенаправлен.
	PaymentAddress string     `json:"payment_address"`
	Status         DealStatus `json:"status"`
	ShareLink      string     `json:"share_link"`
	CreatedAt      time.Time  `json:"created_at"`
}

// HasBuyer сообщает, присоединился ли к сделке второй участник.
func (d *Deal) HasBuyer() bool {
	return d.BuyerID != nil
}
