package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"
	"tour-booking-api/config"
	"tour-booking-api/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

const refreshTTLSeconds = 3600

func newTestRefreshRepo(t *testing.T) (*repository.RefreshTokenRepository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := repository.NewRefreshTokenRepository(&config.RedisClient{Client: client}, refreshTTLSeconds)
	return repo, mr
}

// при отсутствии записи выдается новый токен с полным TTL
func TestIssueOrValidate_NoRecordRotates(t *testing.T) {
	repo, mr := newTestRefreshRepo(t)
	ctx := context.Background()

	token, err := repo.IssueOrValidate(ctx, "u1", "")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	stored, err := repo.Get(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, token, stored)
	assert.Equal(t, refreshTTLSeconds*time.Second, mr.TTL("refresh:u1"))
}

// совпавший токен возвращается без перезаписи: повторный вызов
// с токеном из предыдущего ответа не вызывает лишней ротации
func TestIssueOrValidate_MatchDoesNotRotate(t *testing.T) {
	repo, mr := newTestRefreshRepo(t)
	ctx := context.Background()

	first, err := repo.IssueOrValidate(ctx, "u1", "")
	assert.NoError(t, err)

	mr.FastForward(30 * time.Minute)

	second, err := repo.IssueOrValidate(ctx, "u1", first)

	assert.NoError(t, err)
	assert.Equal(t, first, second)
	// TTL не сбрасывался
	assert.Equal(t, refreshTTLSeconds*time.Second-30*time.Minute, mr.TTL("refresh:u1"))
}

// несовпавший токен ротируется, TTL выставляется заново полным
func TestIssueOrValidate_MismatchRotates(t *testing.T) {
	repo, mr := newTestRefreshRepo(t)
	ctx := context.Background()

	first, err := repo.IssueOrValidate(ctx, "u1", "")
	assert.NoError(t, err)

	mr.FastForward(30 * time.Minute)

	rotated, err := repo.IssueOrValidate(ctx, "u1", "stale-token")

	assert.NoError(t, err)
	assert.NotEqual(t, first, rotated)
	assert.Equal(t, refreshTTLSeconds*time.Second, mr.TTL("refresh:u1"))

	stored, err := repo.Get(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, rotated, stored)
}

// истекшая запись равнозначна отсутствующей: выдается новый токен
func TestIssueOrValidate_ExpiredRecordRotates(t *testing.T) {
	repo, mr := newTestRefreshRepo(t)
	ctx := context.Background()

	first, err := repo.IssueOrValidate(ctx, "u1", "")
	assert.NoError(t, err)

	mr.FastForward(refreshTTLSeconds*time.Second + time.Second)

	rotated, err := repo.IssueOrValidate(ctx, "u1", first)

	assert.NoError(t, err)
	assert.NotEqual(t, first, rotated)
}

// отсутствие записи — не ошибка
func TestGet_MissingKeyIsEmpty(t *testing.T) {
	repo, _ := newTestRefreshRepo(t)

	stored, err := repo.Get(context.Background(), "ghost")

	assert.NoError(t, err)
	assert.Empty(t, stored)
}

// недоступный Redis отдается как ErrStoreUnavailable
func TestIssueOrValidate_StoreUnavailable(t *testing.T) {
	repo, mr := newTestRefreshRepo(t)

	mr.Close()

	_, err := repo.IssueOrValidate(context.Background(), "u1", "")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrStoreUnavailable))
}
