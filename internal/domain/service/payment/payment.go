// Package payment считает производные суммы сделки из фиатной базы.
// Курсы загружаются один раз на старте процесса и дальше не меняются;
// каждая сделка хранит посчитанные суммы как снимок и никогда не
// пересчитывает их по живым курсам.
package payment

import (
	"math"

	"tg_guarantor/internal/domain"
	"tg_guarantor/pkg/errcodes"
)

// Rates — неизменяемая конфигурация курсов и комиссии.
type Rates struct {
	TonRate    float64 // TON за единицу фиата
	UsdtRate   float64 // Фиат за единицу USDT
	FeePercent float64 // Комиссия сервиса, [0, 100)
}

// Quote — посчитанные суммы: итог с комиссией и эквиваленты
// в расчётных валютах.
type Quote struct {
	TotalAmount float64 // 2 знака
	TonAmount   float64 // 4 знака
	UsdtAmount  float64 // 2 знака
}

// Resolve — чистая функция: (сумма, курсы) -> суммы к оплате.
func Resolve(amount float64, rates Rates) (Quote, error) {
	if amount <= 0 {
		return Quote{}, domain.NewError(errcodes.InvalidAmount, "amount must be positive")
	}
	if rates.FeePercent < 0 || rates.FeePercent >= 100 {
		return Quote{}, domain.NewError(errcodes.InvalidFeePercent, "fee percent must be in [0, 100)")
	}

	total := round(amount*(1+rates.FeePercent/100), 2)

	return Quote{
		TotalAmount: total,
		TonAmount:   round(total*rates.TonRate, 4),
		UsdtAmount:  round(total/rates.UsdtRate, 2),
	}, nil
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
