package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"tg_guarantor/internal/domain"
	"tg_guarantor/internal/domain/entity"
	"tg_guarantor/pkg/errcodes"
)

const pgUniqueViolation = "23505"

type DealRepository struct {
	db *sqlx.DB
}

// NewDealRepository создаёт новый экземпляр репозитория.
func NewDealRepository(db *sqlx.DB) *DealRepository {
	return &DealRepository{db: db}
}

// withTx выполняет функцию в транзакции.
func (r *DealRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.InternalServerError,
				"transaction failed",
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// Create сохраняет новую сделку. Конфликт по идентификатору
// возвращается кодом DealAlreadyTaken, чтобы вызывающая сторона могла
// сгенерировать новый ID.
func (r *DealRepository) Create(ctx context.Context, deal *entity.Deal) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		schema, err := fromDeal(deal)
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to marshal items")
		}

		if schema.CreatedAt.IsZero() {
			schema.CreatedAt = time.Now()
		}

		query := `
			INSERT INTO deals (
				deal_id, seller_id, buyer_id, deal_type, items,
				currency, fiat_currency, amount, fee_percent,
				total_amount, ton_amount, usdt_amount,
				payment_address, status, share_link, created_at
			) VALUES (
				:deal_id, :seller_id, :buyer_id, :deal_type, :items,
				:currency, :fiat_currency, :amount, :fee_percent,
				:total_amount, :ton_amount, :usdt_amount,
				:payment_address, :status, :share_link, :created_at
			)`

		if _, err := tx.NamedExecContext(ctx, query, schema); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return domain.NewError(errcodes.DealAlreadyTaken, "deal id already exists")
			}
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert deal")
		}

		return nil
	})
}

// GetByID возвращает сделку по идентификатору.
func (r *DealRepository) GetByID(ctx context.Context, dealID string) (*entity.Deal, error) {
	query := `
		SELECT deal_id, seller_id, buyer_id, deal_type, items,
		       currency, fiat_currency, amount, fee_percent,
		       total_amount, ton_amount, usdt_amount,
		       payment_address, status, share_link, created_at
		FROM deals
		WHERE deal_id = $1`

	var schema dealSchema
	if err := r.db.GetContext(ctx, &schema, query, dealID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.DealNotFound, "deal not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get deal")
	}

	deal, err := schema.toDomain()
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to convert deal")
	}

	return deal, nil
}

// Exists проверяет, занят ли идентификатор сделки.
func (r *DealRepository) Exists(ctx context.Context, dealID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM deals WHERE deal_id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, dealID); err != nil {
		return false, domain.WrapError(err, errcodes.InternalServerError, "failed to check deal id")
	}

	return exists, nil
}

// SetBuyer закрепляет покупателя за сделкой. Условие buyer_id IS NULL
// гарантирует, что второй покупатель не перезапишет первого.
func (r *DealRepository) SetBuyer(ctx context.Context, dealID string, buyerID int64) error {
	query := `
		UPDATE deals
		SET buyer_id = $1
		WHERE deal_id = $2 AND buyer_id IS NULL`

	res, err := r.db.ExecContext(ctx, query, buyerID, dealID)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to set buyer")
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		exists, err := r.Exists(ctx, dealID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.NewError(errcodes.DealNotFound, "deal not found")
		}
		return domain.NewError(errcodes.DealAlreadyTaken, "deal already has a buyer")
	}

	return nil
}

// UpdateStatus переводит сделку из статуса from в статус to. Перевод из
// другого статуса отклоняется кодом DealWrongStatus.
func (r *DealRepository) UpdateStatus(ctx context.Context, dealID string, from, to entity.DealStatus) error {
	query := `
		UPDATE deals
		SET status = $1
		WHERE deal_id = $2 AND status = $3`

	res, err := r.db.ExecContext(ctx, query, to, dealID, from)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to update status")
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		exists, err := r.Exists(ctx, dealID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.NewError(errcodes.DealNotFound, "deal not found")
		}
		return domain.NewError(errcodes.DealWrongStatus,
			fmt.Sprintf("deal is not in status %s", from))
	}

	return nil
}

// ListForUser возвращает сделки, где пользователь — продавец или
// покупатель, новые первыми.
func (r *DealRepository) ListForUser(ctx context.Context, userID int64) ([]entity.Deal, error) {
	query := `
		SELECT deal_id, seller_id, buyer_id, deal_type, items,
		       currency, fiat_currency, amount, fee_percent,
		       total_amount, ton_amount, usdt_amount,
		       payment_address, status, share_link, created_at
		FROM deals
		WHERE seller_id = $1 OR buyer_id = $1
		ORDER BY created_at DESC`

	return r.selectDeals(ctx, query, userID)
}

// ListWaitingPayment возвращает сделки в ожидании оплаты, старые первыми.
func (r *DealRepository) ListWaitingPayment(ctx context.Context) ([]entity.Deal, error) {
	query := `
		SELECT deal_id, seller_id, buyer_id, deal_type, items,
		       currency, fiat_currency, amount, fee_percent,
		       total_amount, ton_amount, usdt_amount,
		       payment_address, status, share_link, created_at
		FROM deals
		WHERE status = $1
		ORDER BY created_at ASC`

	return r.selectDeals(ctx, query, entity.StatusWaitingPayment)
}

// CountCompletedBySeller возвращает число завершённых сделок продавца.
func (r *DealRepository) CountCompletedBySeller(ctx context.Context, sellerID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM deals
		WHERE seller_id = $1 AND status = $2`

	var count int
	if err := r.db.GetContext(ctx, &count, query, sellerID, entity.StatusCompleted); err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to count deals")
	}

	return count, nil
}

func (r *DealRepository) selectDeals(ctx context.Context, query string, args ...any) ([]entity.Deal, error) {
	var schemas []dealSchema
	if err := r.db.SelectContext(ctx, &schemas, query, args...); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to select deals")
	}

	deals := make([]entity.Deal, 0, len(schemas))
	for _, s := range schemas {
		deal, err := s.toDomain()
		if err != nil {
			return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to convert deal")
		}
		deals = append(deals, *deal)
	}

	return deals, nil
}
