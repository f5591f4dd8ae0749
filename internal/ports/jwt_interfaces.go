package ports

import (
	"context"
	"tour-booking-api/internal/security"
)

type JWTServiceInterface interface {
	SignAccessToken(userUUID string) (string, error)
	ValidateJWT(tokenString string) (*security.Claims, error)
}

// RefreshTokenStore : key-value хранилище refresh-токенов с TTL.
// Ключ — UUID пользователя, одна живая запись на пользователя.
type RefreshTokenStore interface {
	Get(ctx context.Context, userUUID string) (string, error)
	Set(ctx context.Context, userUUID string, token string) error
	IssueOrValidate(ctx context.Context, userUUID string, presentedToken string) (string, error)
}
