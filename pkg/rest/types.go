// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

import "time"

// Deal — сделка в ответах API. Платёжный адрес наружу не отдаётся.
type Deal struct {
	ID           string    `json:"id"`
	SellerID     int64     `json:"sellerId"`
	BuyerID      *int64    `json:"buyerId,omitempty"`
	Type         string    `json:"type"`
	Items        []string  `json:"items"`
	Currency     string    `json:"currency"`
	FiatCurrency string    `json:"fiatCurrency"`
	Amount       float64   `json:"amount"`
	FeePercent   float64   `json:"feePercent"`
	TotalAmount  float64   `json:"totalAmount"`
	TonAmount    float64   `json:"tonAmount"`
	UsdtAmount   float64   `json:"usdtAmount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SellerStats — счётчик завершённых сделок продавца.
type SellerStats struct {
	SellerID       int64 `json:"sellerId"`
	CompletedDeals int   `json:"completedDeals"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`
}

// ErrorCode Код ошибки
type ErrorCode string
