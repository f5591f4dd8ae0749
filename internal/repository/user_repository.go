package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"tour-booking-api/config"
	"tour-booking-api/internal/model"
	"tour-booking-api/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound   = errors.New("пользователь не найден")
	ErrDuplicateEmail = errors.New("пользователь с таким email уже существует")
)

const userColumns = `uuid, name, email, photo, role, password_hash, password_changed_at,
	password_reset_token, password_reset_token_expires,
	verification_token, verification_token_expires,
	active, verified, created_at`

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateUser : сохраняет нового пользователя.
// password_changed_at при создании не заполняется, это не смена пароля.
func (r *UserRepository) CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (uuid, name, email, photo, role, password_hash)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + userColumns

	createdUser := &model.User{}
	err := exec.QueryRowxContext(ctx, query,
		user.UUID, user.Name, user.Email, user.Photo, user.Role, user.PasswordHash,
	).StructScan(createdUser)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("[UserRepo] %w", ErrDuplicateEmail)
		}
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return createdUser, nil
}

// FindByUUID : ищет активного пользователя по UUID
func (r *UserRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE uuid = $1 AND active = TRUE`
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, query, uuid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[UserRepo] %w", ErrUserNotFound)
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return &user, nil
}

// FindByEmail : ищет активного пользователя по email
func (r *UserRepository) FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND active = TRUE`
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[UserRepo] %w", ErrUserNotFound)
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя по email", err)
	}
	return &user, nil
}

// UpdateUser : обновляет имя, email, роль и фото
func (r *UserRepository) UpdateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, role = $4, photo = $5
		WHERE uuid = $1
	`
	_, err := exec.ExecContext(ctx, query, user.UUID, user.Name, user.Email, user.Role, user.Photo)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("[UserRepo] %w", ErrDuplicateEmail)
		}
		return util.LogError("[UserRepo] не удалось обновить пользователя", err)
	}
	return nil
}

// UpdatePassword : меняет пароль пользователя.
// password_changed_at выставляется на секунду назад, чтобы токен, выданный
// в том же запросе, не оказался "моложе" смены пароля из-за совпадения секунд.
func (r *UserRepository) UpdatePassword(ctx context.Context, exec sqlx.ExtContext, uuid, newPasswordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2,
		    password_changed_at = NOW() - INTERVAL '1 second'
		WHERE uuid = $1
	`
	_, err := exec.ExecContext(ctx, query, uuid, newPasswordHash)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить пароль", err)
	}
	return nil
}

// SetResetToken : сохраняет хэш одноразового токена сброса пароля и его срок
func (r *UserRepository) SetResetToken(ctx context.Context, exec sqlx.ExtContext, uuid string, tokenHash *string, expires *time.Time) error {
	query := `UPDATE users SET password_reset_token = $2, password_reset_token_expires = $3 WHERE uuid = $1`
	_, err := exec.ExecContext(ctx, query, uuid, tokenHash, expires)
	if err != nil {
		return util.LogError("[UserRepo] не удалось сохранить токен сброса пароля", err)
	}
	return nil
}

// FindByResetToken : ищет пользователя по хэшу токена с непросроченным сроком
func (r *UserRepository) FindByResetToken(ctx context.Context, exec sqlx.ExtContext, tokenHash string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE password_reset_token = $1 AND password_reset_token_expires > NOW() AND active = TRUE`
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, query, tokenHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[UserRepo] %w", ErrUserNotFound)
		}
		return nil, util.LogError("[UserRepo] ошибка поиска по токену сброса", err)
	}
	return &user, nil
}

// SetVerificationToken : сохраняет хэш токена подтверждения аккаунта
func (r *UserRepository) SetVerificationToken(ctx context.Context, exec sqlx.ExtContext, uuid string, tokenHash *string, expires *time.Time) error {
	query := `UPDATE users SET verification_token = $2, verification_token_expires = $3 WHERE uuid = $1`
	_, err := exec.ExecContext(ctx, query, uuid, tokenHash, expires)
	if err != nil {
		return util.LogError("[UserRepo] не удалось сохранить токен подтверждения", err)
	}
	return nil
}

// FindByVerificationToken : ищет пользователя по хэшу токена подтверждения
func (r *UserRepository) FindByVerificationToken(ctx context.Context, exec sqlx.ExtContext, tokenHash string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE verification_token = $1 AND verification_token_expires > NOW() AND active = TRUE`
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, query, tokenHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[UserRepo] %w", ErrUserNotFound)
		}
		return nil, util.LogError("[UserRepo] ошибка поиска по токену подтверждения", err)
	}
	return &user, nil
}

// MarkVerified : подтверждает аккаунт и очищает поля одноразового токена
func (r *UserRepository) MarkVerified(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	query := `
		UPDATE users
		SET verified = TRUE, verification_token = NULL, verification_token_expires = NULL
		WHERE uuid = $1
	`
	_, err := exec.ExecContext(ctx, query, uuid)
	if err != nil {
		return util.LogError("[UserRepo] не удалось подтвердить аккаунт", err)
	}
	return nil
}

// DeactivateUser : мягкое удаление, пользователь пропадает из выборок
func (r *UserRepository) DeactivateUser(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	query := `UPDATE users SET active = FALSE WHERE uuid = $1`
	_, err := exec.ExecContext(ctx, query, uuid)
	if err != nil {
		return util.LogError("[UserRepo] не удалось деактивировать пользователя", err)
	}
	return nil
}

// DeleteUser : жесткое удаление, доступно только администратору
func (r *UserRepository) DeleteUser(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	query := `DELETE FROM users WHERE uuid = $1`
	_, err := exec.ExecContext(ctx, query, uuid)
	if err != nil {
		return util.LogError("[UserRepo] не удалось удалить пользователя", err)
	}
	return nil
}

// ListUsers : вывод списка активных пользователей с cursor-based пагинацией
func (r *UserRepository) ListUsers(ctx context.Context, exec sqlx.ExtContext, cursor string, limit int) ([]*model.User, string, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE created_at > $1 AND active = TRUE
        ORDER BY created_at ASC, uuid ASC
        LIMIT $2
    `

	var cursorTime time.Time
	var err error

	if cursor == "" {
		cursorTime = time.Time{}
	} else {
		cursorTime, err = time.Parse(time.RFC3339Nano, cursor)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor format: %w", err)
		}
	}

	var users []*model.User
	err = sqlx.SelectContext(ctx, exec, &users, query, cursorTime, limit+1) // +1 для проверки наличия следующей страницы
	if err != nil {
		return nil, "", util.LogError("[UserRepo] не удалось получить список пользователей", err)
	}

	var nextCursor string
	if len(users) > limit {
		users = users[:limit]
		nextCursor = users[len(users)-1].CreatedAt.Format(time.RFC3339Nano)
	}

	return users, nextCursor, nil
}
