package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"tg_guarantor/internal/domain"
	"tg_guarantor/internal/domain/entity"
	"tg_guarantor/pkg/errcodes"
	"tg_guarantor/pkg/rest"
)

type fakeDealService struct {
	deals map[string]*entity.Deal
	stats map[int64]int
}

func (f *fakeDealService) Get(_ context.Context, dealID string) (*entity.Deal, error) {
	deal, ok := f.deals[dealID]
	if !ok {
		return nil, domain.NewError(errcodes.DealNotFound, "deal not found")
	}
	return deal, nil
}

func (f *fakeDealService) SellerStats(_ context.Context, sellerID int64) (int, error) {
	return f.stats[sellerID], nil
}

func newTestRouter(svc *fakeDealService) chi.Router {
	router := chi.NewRouter()
	NewServer(NewDealServer(svc)).RegisterRoutes(router)
	return router
}

func TestGetV1Deal(t *testing.T) {
	rq := require.New(t)

	buyerID := int64(200)
	svc := &fakeDealService{
		deals: map[string]*entity.Deal{
			"DEAL0001": {
				ID:             "DEAL0001",
				SellerID:       100,
				BuyerID:        &buyerID,
				Type:           entity.DealTypeGift,
				Items:          []string{"https://t.me/nft/one"},
				Currency:       "ton",
				FiatCurrency:   "ton",
				Amount:         1000,
				FeePercent:     3,
				TotalAmount:    1030,
				TonAmount:      54.59,
				UsdtAmount:     42.39,
				PaymentAddress: "UQAeQikkaB6Zz0hWF2IVjsMwK8Ldvtv4jYHPJ3KJDpzoWS1M",
				Status:         entity.StatusWaitingPayment,
			},
		},
	}

	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/deals/DEAL0001", nil))

	rq.Equal(http.StatusOK, w.Code)

	var got rest.Deal
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	rq.Equal("DEAL0001", got.ID)
	rq.Equal(int64(100), got.SellerID)
	rq.NotNil(got.BuyerID)
	rq.Equal("waiting_payment", got.Status)

	// платёжный адрес наружу не отдаётся
	rq.NotContains(w.Body.String(), "UQAeQikkaB6Zz0hWF2IVjsMwK8Ldvtv4jYHPJ3KJDpzoWS1M")
}

func TestGetV1DealNotFound(t *testing.T) {
	rq := require.New(t)

	svc := &fakeDealService{deals: map[string]*entity.Deal{}}

	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/deals/NOPE0000", nil))

	rq.Equal(http.StatusNotFound, w.Code)

	var got rest.Error
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	rq.Equal(rest.ErrorCode(errcodes.DealNotFound), got.Code)
}

func TestGetV1SellerStats(t *testing.T) {
	rq := require.New(t)

	svc := &fakeDealService{stats: map[int64]int{100: 7}}

	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/sellers/100/stats", nil))

	rq.Equal(http.StatusOK, w.Code)

	var got rest.SellerStats
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	rq.Equal(int64(100), got.SellerID)
	rq.Equal(7, got.CompletedDeals)
}

func TestGetV1SellerStatsBadID(t *testing.T) {
	rq := require.New(t)

	svc := &fakeDealService{}

	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/sellers/abc/stats", nil))

	rq.Equal(http.StatusBadRequest, w.Code)
}
