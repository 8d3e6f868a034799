package entity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tg_guarantor/internal/domain/entity"
)

func TestDealStatusTransitions(t *testing.T) {
	rq := require.New(t)

	allStatuses := []entity.DealStatus{
		entity.StatusCreated,
		entity.StatusWaitingPayment,
		entity.StatusPaid,
		entity.StatusGiftSent,
		entity.StatusCompleted,
	}

	allowed := map[entity.DealStatus]entity.DealStatus{
		entity.StatusCreated:        entity.StatusWaitingPayment,
		entity.StatusWaitingPayment: entity.StatusPaid,
		entity.StatusPaid:           entity.StatusGiftSent,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := allowed[from] == to
			rq.Equal(want, from.CanTransition(to), "%s -> %s", from, to)
		}
	}

	// откатов и перескоков нет: из терминальных статусов выхода нет
	rq.False(entity.StatusGiftSent.CanTransition(entity.StatusCompleted))
	rq.False(entity.StatusCompleted.CanTransition(entity.StatusCreated))
}

func TestDealStatusValid(t *testing.T) {
	rq := require.New(t)

	for _, s := range []entity.DealStatus{
		entity.StatusCreated,
		entity.StatusWaitingPayment,
		entity.StatusPaid,
		entity.StatusGiftSent,
		entity.StatusCompleted,
	} {
		rq.True(s.Valid(), "%s", s)
	}

	rq.False(entity.DealStatus("cancelled").Valid())
}

func TestDealTypeValid(t *testing.T) {
	rq := require.New(t)

	for _, dt := range []entity.DealType{
		entity.DealTypeGift,
		entity.DealTypeChannel,
		entity.DealTypeUsername,
		entity.DealTypePremium,
	} {
		rq.True(dt.Valid(), "%s", dt)
	}

	rq.False(entity.DealType("lottery").Valid())
}

func TestUserHandle(t *testing.T) {
	rq := require.New(t)

	u := &entity.User{ID: 1, Username: "durov", FirstName: "Pavel"}
	rq.Equal("@durov", u.Handle())

	u = &entity.User{ID: 2, FirstName: "Pavel"}
	rq.Equal("Pavel", u.Handle())
}
