package handler

import (
	"tg_guarantor/internal/domain/service/deal"
	"tg_guarantor/internal/domain/service/session"
	"tg_guarantor/internal/infrastructure/persistence"
	"tg_guarantor/internal/tasks"
	"tg_guarantor/pkg/contextx"
)

//nolint:gochecknoglobals
var logger = contextx.LoggerFromContextOrDefault

type Handler struct {
	deals      *deal.Service
	sessions   *session.Engine
	users      *persistence.UserRepository
	requisites *persistence.RequisiteRepository
	queue      *tasks.Enqueuer

	supportURL string
}

func New(
	deals *deal.Service,
	sessions *session.Engine,
	users *persistence.UserRepository,
	requisites *persistence.RequisiteRepository,
	queue *tasks.Enqueuer,
	supportURL string,
) *Handler {
	return &Handler{
		deals:      deals,
		sessions:   sessions,
		users:      users,
		requisites: requisites,
		queue:      queue,
		supportURL: supportURL,
	}
}
