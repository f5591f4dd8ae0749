package ports

import (
	"context"
	"time"
	"tour-booking-api/internal/model"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error)
	FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error)
	FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error)
	UpdateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) error
	UpdatePassword(ctx context.Context, exec sqlx.ExtContext, uuid, newPasswordHash string) error
	SetResetToken(ctx context.Context, exec sqlx.ExtContext, uuid string, tokenHash *string, expires *time.Time) error
	FindByResetToken(ctx context.Context, exec sqlx.ExtContext, tokenHash string) (*model.User, error)
	SetVerificationToken(ctx context.Context, exec sqlx.ExtContext, uuid string, tokenHash *string, expires *time.Time) error
	FindByVerificationToken(ctx context.Context, exec sqlx.ExtContext, tokenHash string) (*model.User, error)
	MarkVerified(ctx context.Context, exec sqlx.ExtContext, uuid string) error
	DeactivateUser(ctx context.Context, exec sqlx.ExtContext, uuid string) error
	DeleteUser(ctx context.Context, exec sqlx.ExtContext, uuid string) error
	ListUsers(ctx context.Context, exec sqlx.ExtContext, cursor string, limit int) ([]*model.User, string, error)
}

type UserService interface {
	GetUser(ctx context.Context, uuid string) (*model.User, error)
	UpdateMe(ctx context.Context, userUUID, name, email string) (*model.User, error)
	UpdatePhoto(ctx context.Context, userUUID string, photo []byte) (*model.User, error)
	DeleteMe(ctx context.Context, userUUID string) error
	UpdateUser(ctx context.Context, uuid, name, email, role string) (*model.User, error)
	DeleteUser(ctx context.Context, uuid string) error
	ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error)
}
