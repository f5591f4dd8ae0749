package security

import (
	"tour-booking-api/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword хэширует пароль через bcrypt.
// Сравнение в CheckPassword выполняется самим bcrypt за константное время.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", util.LogError("ошибка хэширования пароля", err)
	}
	return string(hash), nil
}

func CheckPassword(password string, passwordHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil
}
