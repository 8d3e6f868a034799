package persistence

import (
	"database/sql"
	"encoding/json"
	"time"

	"tg_guarantor/internal/domain/entity"
)

// userSchema — представление строки таблицы users.
type userSchema struct {
	ID        int64     `db:"user_id"`
	Username  string    `db:"username"`
	FirstName string    `db:"first_name"`
	Language  string    `db:"language"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *userSchema) toDomain() *entity.User {
	return &entity.User{
		ID:        s.ID,
		Username:  s.Username,
		FirstName: s.FirstName,
		Language:  s.Language,
		CreatedAt: s.CreatedAt,
	}
}

// bankCardSchema — представление строки таблицы bank_cards.
type bankCardSchema struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	CardNumber string    `db:"card_number"`
	Currency   string    `db:"currency"`
	CreatedAt  time.Time `db:"created_at"`
}

func (s *bankCardSchema) toDomain() entity.BankCard {
	return entity.BankCard{
		ID:         s.ID,
		UserID:     s.UserID,
		CardNumber: s.CardNumber,
		Currency:   s.Currency,
		CreatedAt:  s.CreatedAt,
	}
}

// dealSchema — представление строки таблицы deals. Позиции лежат
// в JSONB, порядок элементов сохраняется.
type dealSchema struct {
	ID             string        `db:"deal_id"`
	SellerID       int64         `db:"seller_id"`
	BuyerID        sql.NullInt64 `db:"buyer_id"`
	Type           string        `db:"deal_type"`
	Items          []byte        `db:"items"`
	Currency       string        `db:"currency"`
	FiatCurrency   string        `db:"fiat_currency"`
	Amount         float64       `db:"amount"`
	FeePercent     float64       `db:"fee_percent"`
	TotalAmount    float64       `db:"total_amount"`
	TonAmount      float64       `db:"ton_amount"`
	UsdtAmount     float64       `db:"usdt_amount"`
	PaymentAddress string        `db:"payment_address"`
	Status         string        `db:"status"`
	ShareLink      string        `db:"share_link"`
	CreatedAt      time.Time     `db:"created_at"`
}

func fromDeal(d *entity.Deal) (*dealSchema, error) {
	items, err := json.Marshal(d.Items)
	if err != nil {
		return nil, err
	}

	schema := &dealSchema{
		ID:             d.ID,
		SellerID:       d.SellerID,
		Type:           string(d.Type),
		Items:          items,
		Currency:       d.Currency,
		FiatCurrency:   d.FiatCurrency,
		Amount:         d.Amount,
		FeePercent:     d.FeePercent,
		TotalAmount:    d.TotalAmount,
		TonAmount:      d.TonAmount,
		UsdtAmount:     d.UsdtAmount,
		PaymentAddress: d.PaymentAddress,
		Status:         string(d.Status),
		ShareLink:      d.ShareLink,
		CreatedAt:      d.CreatedAt,
	}

	if d.BuyerID != nil {
		schema.BuyerID = sql.NullInt64{Int64: *d.BuyerID, Valid: true}
	}

	return schema, nil
}

func (s *dealSchema) toDomain() (*entity.Deal, error) {
	var items []string
	if len(s.Items) > 0 {
		if err := json.Unmarshal(s.Items, &items); err != nil {
			return nil, err
		}
	}

	deal := &entity.Deal{
		ID:             s.ID,
		SellerID:       s.SellerID,
		Type:           entity.DealType(s.Type),
		Items:          items,
		Currency:       s.Currency,
		FiatCurrency:   s.FiatCurrency,
		Amount:         s.Amount,
		FeePercent:     s.FeePercent,
		TotalAmount:    s.TotalAmount,
		TonAmount:      s.TonAmount,
		UsdtAmount:     s.UsdtAmount,
		PaymentAddress: s.PaymentAddress,
		Status:         entity.DealStatus(s.Status),
		ShareLink:      s.ShareLink,
		CreatedAt:      s.CreatedAt,
	}

	if s.BuyerID.Valid {
		buyerID := s.BuyerID.Int64
		deal.BuyerID = &buyerID
	}

	return deal, nil
}
