package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"tg_guarantor/internal/domain"
	"tg_guarantor/internal/domain/entity"
	"tg_guarantor/pkg/errcodes"
)

type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт новый экземпляр репозитория.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// withTx выполняет функцию в транзакции.
func (r *UserRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
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

// Add регистрирует пользователя. Повторный вызов обновляет username и
// имя, но не трогает выбранный язык. Вместе с пользователем заводится
// пустая строка реквизитов.
func (r *UserRepository) Add(ctx context.Context, user *entity.User) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO users (user_id, username, first_name, language, created_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id) DO UPDATE
			SET username = EXCLUDED.username, first_name = EXCLUDED.first_name`

		language := user.Language
		if language == "" {
			language = entity.LanguageRU
		}

		createdAt := user.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}

		if _, err := tx.ExecContext(ctx, query,
			user.ID, user.Username, user.FirstName, language, createdAt); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to upsert user")
		}

		requisiteQuery := `
			INSERT INTO requisites (user_id)
			VALUES ($1)
			ON CONFLICT (user_id) DO NOTHING`

		if _, err := tx.ExecContext(ctx, requisiteQuery, user.ID); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to seed requisites")
		}

		return nil
	})
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*entity.User, error) {
	query := `
		SELECT user_id, username, first_name, language, created_at
		FROM users
		WHERE user_id = $1`

	var schema userSchema
	if err := r.db.GetContext(ctx, &schema, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.UserNotFound, "user not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get user")
	}

	return schema.toDomain(), nil
}

// Language возвращает язык интерфейса пользователя. Для незнакомого
// пользователя возвращается русский.
func (r *UserRepository) Language(ctx context.Context, userID int64) (string, error) {
	query := `SELECT language FROM users WHERE user_id = $1`

	var language string
	if err := r.db.GetContext(ctx, &language, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.LanguageRU, nil
		}
		return "", domain.WrapError(err, errcodes.InternalServerError, "failed to get language")
	}

	return language, nil
}

// SetLanguage переключает язык интерфейса.
func (r *UserRepository) SetLanguage(ctx context.Context, userID int64, language string) error {
	query := `UPDATE users SET language = $1 WHERE user_id = $2`

	res, err := r.db.ExecContext(ctx, query, language, userID)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to set language")
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.NewError(errcodes.UserNotFound, "user not found")
	}

	return nil
}

// AddAdmin выдаёт пользователю права администратора.
func (r *UserRepository) AddAdmin(ctx context.Context, userID int64, username string) error {
	query := `
		INSERT INTO admins (user_id, username, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET username = EXCLUDED.username`

	if _, err := r.db.ExecContext(ctx, query, userID, username, time.Now()); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to add admin")
	}

	return nil
}

// ListAdmins возвращает идентификаторы всех администраторов.
func (r *UserRepository) ListAdmins(ctx context.Context) ([]int64, error) {
	query := `SELECT user_id FROM admins ORDER BY user_id`

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list admins")
	}

	return ids, nil
}

// IsAdmin проверяет наличие прав администратора.
func (r *UserRepository) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM admins WHERE user_id = $1)`

	var isAdmin bool
	if err := r.db.GetContext(ctx, &isAdmin, query, userID); err != nil {
		return false, domain.WrapError(err, errcodes.InternalServerError, "failed to check admin")
	}

	return isAdmin, nil
}
