package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"tour-booking-api/internal/util"
)

// GenerateSingleUseToken генерирует одноразовый токен (сброс пароля,
// подтверждение аккаунта). Plaintext уходит пользователю в письме,
// в БД сохраняется только sha256-хэш: по нему же потом идет поиск,
// поэтому хэш детерминированный, а не bcrypt.
func GenerateSingleUseToken() (plaintext string, hash string, err error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", "", util.LogError("ошибка генерации одноразового токена", err)
	}

	plaintext = hex.EncodeToString(tokenBytes)
	return plaintext, HashSingleUseToken(plaintext), nil
}

// HashSingleUseToken повторно хэширует предъявленный plaintext для сравнения
func HashSingleUseToken(plaintext string) string {
	digest := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(digest[:])
}
