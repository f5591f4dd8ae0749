package security_test

import (
	"errors"
	"testing"
	"time"
	"tour-booking-api/config"
	"tour-booking-api/internal/model"
	"tour-booking-api/internal/security"

	"github.com/stretchr/testify/assert"
)

func newTestJWTService(ttl string) *security.JWTService {
	return security.NewJWTService(&config.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenTTL: ttl,
		Issuer:         "tour-booking-api",
	})
}

func TestSignAndValidate_Roundtrip(t *testing.T) {
	svc := newTestJWTService("15m")

	token, err := svc.SignAccessToken("u1")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, "u1", claims.UserUUID)
	assert.Equal(t, "tour-booking-api", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestSignAccessToken_EmptySecret(t *testing.T) {
	svc := security.NewJWTService(&config.JWTConfig{AccessTokenTTL: "15m"})

	_, err := svc.SignAccessToken("u1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "секрет")
}

func TestValidateJWT_Expired(t *testing.T) {
	svc := newTestJWTService("-1m")

	token, err := svc.SignAccessToken("u1")
	assert.NoError(t, err)

	_, err = svc.ValidateJWT(token)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, security.ErrTokenExpired))
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	svc := newTestJWTService("15m")
	token, err := svc.SignAccessToken("u1")
	assert.NoError(t, err)

	other := security.NewJWTService(&config.JWTConfig{
		SecretKey:      "another-secret",
		AccessTokenTTL: "15m",
	})

	_, err = other.ValidateJWT(token)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, security.ErrTokenInvalid))
}

func TestValidateJWT_Garbage(t *testing.T) {
	svc := newTestJWTService("15m")

	_, err := svc.ValidateJWT("not.a.token")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, security.ErrTokenInvalid))
}

// токен, выданный до смены пароля, должен отсеиваться guard-ом
func TestIsPasswordChangedAfter(t *testing.T) {
	now := time.Now()

	changed := now.Add(-time.Hour)
	user := &model.User{PasswordChangedAt: &changed}

	// токен выдан после смены пароля
	assert.False(t, user.IsPasswordChangedAfter(now))

	// токен выдан до смены пароля
	assert.True(t, user.IsPasswordChangedAfter(now.Add(-2*time.Hour)))

	// пароль никогда не менялся
	fresh := &model.User{}
	assert.False(t, fresh.IsPasswordChangedAfter(now.Add(-24*time.Hour)))
}

// бэкдейт на одну секунду при смене пароля: токен, выданный в ту же
// секунду, что и смена, считается устаревшим
func TestIsPasswordChangedAfter_SameSecond(t *testing.T) {
	issuedAt := time.Now().Truncate(time.Second)
	changedAt := issuedAt.Add(time.Second)

	user := &model.User{PasswordChangedAt: &changedAt}
	assert.True(t, user.IsPasswordChangedAfter(issuedAt))
}
