package entity

import "time"

// BankCard — банковская карта продавца. Реквизиты живут независимо от
// сделок: сделка снимает с них снимок и обратной ссылки не держит.
type BankCard struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	CardNumber string    `json:"card_number"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"created_at"`
}

// Masked возвращает номер карты в виде "1234 **** **** 5678".
func (c BankCard) Masked() string {
	if len(c.CardNumber) < 8 {
		return "**** **** **** ****"
	}
	return c.CardNumber[:4] + " **** **** " + c.CardNumber[len(c.CardNumber)-4:]
}
