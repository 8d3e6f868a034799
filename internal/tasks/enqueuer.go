package tasks

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"tg_guarantor/internal/domain/entity"
)

//nolint:gochecknoglobals // skip
var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxRetry = 5

// Enqueuer ставит уведомления в очередь. Реализует deal.Notifier.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

func (e *Enqueuer) BuyerJoined(ctx context.Context, deal *entity.Deal, buyer *entity.User, buyerStats int) error {
	return e.enqueue(ctx, TypeBuyerJoined, BuyerJoinedPayload{
		DealID:      deal.ID,
		SellerID:    deal.SellerID,
		BuyerHandle: buyer.Handle(),
		BuyerStats:  buyerStats,
	})
}

func (e *Enqueuer) PaymentConfirmed(ctx context.Context, deal *entity.Deal) error {
	payload := PaymentConfirmedPayload{
		DealID:   deal.ID,
		SellerID: deal.SellerID,
	}
	if deal.BuyerID != nil {
		payload.BuyerID = *deal.BuyerID
	}

	return e.enqueue(ctx, TypePaymentConfirmed, payload)
}

func (e *Enqueuer) GiftSent(ctx context.Context, deal *entity.Deal) error {
	payload := GiftSentPayload{DealID: deal.ID}
	if deal.BuyerID != nil {
		payload.BuyerID = *deal.BuyerID
	}

	return e.enqueue(ctx, TypeGiftSent, payload)
}

// PaymentClaim — заявка покупателя «я оплатил», уходит администраторам.
func (e *Enqueuer) PaymentClaim(ctx context.Context, deal *entity.Deal, buyer *entity.User) error {
	return e.enqueue(ctx, TypePaymentClaim, PaymentClaimPayload{
		DealID:       deal.ID,
		BuyerHandle:  buyer.Handle(),
		TotalAmount:  deal.TotalAmount,
		FiatCurrency: deal.FiatCurrency,
	})
}

func (e *Enqueuer) enqueue(ctx context.Context, taskType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", taskType, err)
	}

	task := asynq.NewTask(taskType, data, asynq.Queue(QueueNotify), asynq.MaxRetry(maxRetry))
	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}

	return nil
}
