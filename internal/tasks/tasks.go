// Package tasks — очередь исходящих уведомлений на asynq. Постановка
// в очередь отделяет переходы жизненного цикла сделки от доставки в
// Telegram: упавшая доставка ретраится, не откатывая переход.
package tasks

// Типы задач очереди уведомлений.
const (
	TypeBuyerJoined      = "notify:buyer_joined"
	TypePaymentConfirmed = "notify:payment_confirmed"
	TypeGiftSent         = "notify:gift_sent"
	TypePaymentClaim     = "notify:payment_claim"
)

// QueueNotify — имя очереди уведомлений.
const QueueNotify = "notify"

type BuyerJoinedPayload struct {
	DealID      string `json:"deal_id"`
	SellerID    int64  `json:"seller_id"`
	BuyerHandle string `json:"buyer_handle"`
	BuyerStats  int    `json:"buyer_stats"`
}

type PaymentConfirmedPayload struct {
	DealID   string `json:"deal_id"`
	SellerID int64  `json:"seller_id"`
	BuyerID  int64  `json:"buyer_id"`
}

type GiftSentPayload struct {
	DealID  string `json:"deal_id"`
	BuyerID int64  `json:"buyer_id"`
}

type PaymentClaimPayload struct {
	DealID       string  `json:"deal_id"`
	BuyerHandle  string  `json:"buyer_handle"`
	TotalAmount  float64 `json:"total_amount"`
	FiatCurrency string  `json:"fiat_currency"`
}
