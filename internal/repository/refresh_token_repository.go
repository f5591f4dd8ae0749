package repository

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"
	"tour-booking-api/config"
	"tour-booking-api/internal/util"

	"github.com/redis/go-redis/v9"
)

// ErrStoreUnavailable : Redis недоступен, ошибка retryable (503)
var ErrStoreUnavailable = errors.New("хранилище refresh токенов недоступно")

// RefreshTokenRepository хранит refresh-токены в Redis с TTL.
// Ключ — UUID пользователя: на пользователя существует ровно одна живая
// запись, при ротации она перезаписывается. Атомарность одиночных SET/GET
// обеспечивает сам Redis, клиентских блокировок нет; при гонке ротаций
// выигрывает последняя запись.
type RefreshTokenRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewRefreshTokenRepository(client *config.RedisClient, ttlSeconds int) *RefreshTokenRepository {
	return &RefreshTokenRepository{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// Get возвращает сохраненный токен пользователя.
// Отсутствие записи — не ошибка, возвращается пустая строка.
func (r *RefreshTokenRepository) Get(ctx context.Context, userUUID string) (string, error) {
	val, err := r.client.Client.Get(ctx, r.key(userUUID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return val, nil
}

// Set сохраняет токен с TTL из конфигурации
func (r *RefreshTokenRepository) Set(ctx context.Context, userUUID string, token string) error {
	cmd := r.client.Client.Set(ctx, r.key(userUUID), token, r.ttl)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}
	return nil
}

// IssueOrValidate : основная операция хранилища.
// Если записи нет или предъявленный токен не совпадает с сохраненным,
// выполняется ротация: генерируется новый токен и пишется с полным TTL.
// Совпавший токен возвращается без перезаписи, лишних ротаций нет.
func (r *RefreshTokenRepository) IssueOrValidate(ctx context.Context, userUUID string, presentedToken string) (string, error) {
	stored, err := r.Get(ctx, userUUID)
	if err != nil {
		return "", err
	}

	if stored != "" && stored == presentedToken {
		return stored, nil
	}

	token, err := newOpaqueToken()
	if err != nil {
		return "", err
	}

	if err := r.Set(ctx, userUUID, token); err != nil {
		return "", err
	}

	return token, nil
}

// newOpaqueToken : 32 случайных байта в base64, клиенту уходит как есть
func newOpaqueToken() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", util.LogError("ошибка генерации refresh токена", err)
	}
	return base64.StdEncoding.EncodeToString(tokenBytes), nil
}

func (r *RefreshTokenRepository) key(userUUID string) string {
	return fmt.Sprintf("refresh:%s", userUUID)
}
