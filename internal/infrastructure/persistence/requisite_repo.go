package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"tg_guarantor/internal/domain"
	"tg_guarantor/internal/domain/entity"
	"tg_guarantor/pkg/errcodes"
)

type RequisiteRepository struct {
	db *sqlx.DB

	// defaultWallet подставляется, пока продавец не указал свой.
	defaultWallet string
}

// NewRequisiteRepository создаёт новый экземпляр репозитория.
func NewRequisiteRepository(db *sqlx.DB, defaultWallet string) *RequisiteRepository {
	return &RequisiteRepository{db: db, defaultWallet: defaultWallet}
}

// Wallet возвращает TON-кошелёк пользователя. Если пользователь не
// задавал свой, возвращается кошелёк сервиса по умолчанию.
func (r *RequisiteRepository) Wallet(ctx context.Context, userID int64) (string, error) {
	query := `SELECT ton_wallet FROM requisites WHERE user_id = $1`

	var wallet sql.NullString
	if err := r.db.GetContext(ctx, &wallet, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r.defaultWallet, nil
		}
		return "", domain.WrapError(err, errcodes.InternalServerError, "failed to get wallet")
	}

	if !wallet.Valid || wallet.String == "" {
		return r.defaultWallet, nil
	}

	return wallet.String, nil
}

// HasCustomWallet сообщает, задал ли пользователь собственный кошелёк.
func (r *RequisiteRepository) HasCustomWallet(ctx context.Context, userID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM requisites
			WHERE user_id = $1 AND ton_wallet IS NOT NULL AND ton_wallet <> ''
		)`

	var has bool
	if err := r.db.GetContext(ctx, &has, query, userID); err != nil {
		return false, domain.WrapError(err, errcodes.InternalServerError, "failed to check wallet")
	}

	return has, nil
}

// SetWallet сохраняет TON-кошелёк пользователя.
func (r *RequisiteRepository) SetWallet(ctx context.Context, userID int64, wallet string) error {
	query := `
		INSERT INTO requisites (user_id, ton_wallet, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET ton_wallet = EXCLUDED.ton_wallet, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query, userID, wallet, time.Now()); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to set wallet")
	}

	return nil
}

// ListCards возвращает банковские карты пользователя, новые первыми.
func (r *RequisiteRepository) ListCards(ctx context.Context, userID int64) ([]entity.BankCard, error) {
	query := `
		SELECT id, user_id, card_number, currency, created_at
		FROM bank_cards
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	var schemas []bankCardSchema
	if err := r.db.SelectContext(ctx, &schemas, query, userID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list cards")
	}

	cards := make([]entity.BankCard, 0, len(schemas))
	for _, s := range schemas {
		cards = append(cards, s.toDomain())
	}

	return cards, nil
}

// GetCard возвращает карту пользователя. Чужая карта недоступна.
func (r *RequisiteRepository) GetCard(ctx context.Context, userID, cardID int64) (*entity.BankCard, error) {
	query := `
		SELECT id, user_id, card_number, currency, created_at
		FROM bank_cards
		WHERE id = $1 AND user_id = $2`

	var schema bankCardSchema
	if err := r.db.GetContext(ctx, &schema, query, cardID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.CardNotFound, "card not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get card")
	}

	card := schema.toDomain()

	return &card, nil
}

// AddCard сохраняет новую банковскую карту и возвращает её идентификатор.
func (r *RequisiteRepository) AddCard(ctx context.Context, userID int64, cardNumber, currency string) (int64, error) {
	query := `
		INSERT INTO bank_cards (user_id, card_number, currency, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id int64
	if err := r.db.GetContext(ctx, &id, query, userID, cardNumber, currency, time.Now()); err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to add card")
	}

	return id, nil
}

// UpdateCardNumber заменяет номер существующей карты.
func (r *RequisiteRepository) UpdateCardNumber(ctx context.Context, userID, cardID int64, cardNumber string) error {
	query := `
		UPDATE bank_cards
		SET card_number = $1
		WHERE id = $2 AND user_id = $3`

	res, err := r.db.ExecContext(ctx, query, cardNumber, cardID, userID)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to update card")
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.NewError(errcodes.CardNotFound, "card not found")
	}

	return nil
}

// DeleteCard удаляет карту пользователя.
func (r *RequisiteRepository) DeleteCard(ctx context.Context, userID, cardID int64) error {
	query := `DELETE FROM bank_cards WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, cardID, userID)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to delete card")
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.NewError(errcodes.CardNotFound, "card not found")
	}

	return nil
}
