package server

import (
	"tg_guarantor/internal/domain/entity"
	"tg_guarantor/pkg/rest"
)

func newRESTDeal(deal *entity.Deal) rest.Deal {
	return rest.Deal{
		ID:           deal.ID,
		SellerID:     deal.SellerID,
		BuyerID:      deal.BuyerID,
		Type:         string(deal.Type),
		Items:        deal.Items,
		Currency:     deal.Currency,
		FiatCurrency: deal.FiatCurrency,
		Amount:       deal.Amount,
		FeePercent:   deal.FeePercent,
		TotalAmount:  deal.TotalAmount,
		TonAmount:    deal.TonAmount,
		UsdtAmount:   deal.UsdtAmount,
		Status:       string(deal.Status),
		CreatedAt:    deal.CreatedAt,
	}
}
