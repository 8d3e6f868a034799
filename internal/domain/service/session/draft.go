package session

import "tg_guarantor/internal/domain/entity"

// Draft — эфемерное накопление ответов мастера до создания сделки.
// Живёт только в памяти, при рестарте теряется.
type Draft struct {
	DealType     entity.DealType
	Items        []string
	Currency     string
	FiatCurrency string
	Amount       float64

	// Черновик мастера реквизитов
	CardCurrency string
	CardID       int64
}

// Complete сообщает, достаточно ли данных для создания сделки.
func (d Draft) Complete() bool {
	return d.DealType.Valid() &&
		len(d.Items) > 0 &&
		d.FiatCurrency != "" &&
		d.Amount > 0
}
