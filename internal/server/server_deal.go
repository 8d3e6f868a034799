package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"

	"tg_guarantor/internal/domain"
	"tg_guarantor/internal/domain/entity"
	"tg_guarantor/pkg/errcodes"
	"tg_guarantor/pkg/httpx/reply"
	"tg_guarantor/pkg/rest"
)

type dealService interface {
	Get(ctx context.Context, dealID string) (*entity.Deal, error)
	SellerStats(ctx context.Context, sellerID int64) (int, error)
}

// DealServer — read-only HTTP API поверх сделок: карточка сделки и
// статистика продавца для внешних интеграций.
type DealServer struct {
	dealService dealService
}

func NewDealServer(dealService dealService) DealServer {
	return DealServer{
		dealService: dealService,
	}
}

func (s DealServer) getV1Deal(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	deal, err := s.dealService.Get(ctx, r.PathValue("id"))
	if err != nil {
		if domain.HasCode(err, errcodes.DealNotFound) {
			return failure.NewNotFoundError(
				fmt.Errorf("dealService.Get: %w", err).Error(),
				failure.WithCode(errcodes.DealNotFound),
			)
		}
		return fmt.Errorf("dealService.Get: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDeal(deal))

	return nil
}

func (s DealServer) getV1SellerStats(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	sellerID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return failure.NewInvalidArgumentError(
			fmt.Errorf("strconv.ParseInt: %w", err).Error(),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("Invalid seller id"),
		)
	}

	stats, err := s.dealService.SellerStats(ctx, sellerID)
	if err != nil {
		return fmt.Errorf("dealService.SellerStats: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.SellerStats{
		SellerID:       sellerID,
		CompletedDeals: stats,
	})

	return nil
}
