package model

import "time"

const (
	RoleUser      = "user"
	RoleGuide     = "guide"
	RoleLeadGuide = "lead-guide"
	RoleAdmin     = "admin"
)

type User struct {
	UUID         string `db:"uuid" json:"uuid"`
	Name         string `db:"name" json:"name"`
	Email        string `db:"email" json:"email"`
	Photo        string `db:"photo" json:"photo"`
	Role         string `db:"role" json:"role"`
	PasswordHash string `db:"password_hash" json:"-"`
	// PasswordChangedAt заполняется только при смене пароля, при регистрации NULL
	PasswordChangedAt *time.Time `db:"password_changed_at" json:"-"`

	// Поля одноразовых токенов: хранится только sha256-хэш, plaintext уходит в письмо
	PasswordResetToken        *string    `db:"password_reset_token" json:"-"`
	PasswordResetTokenExpires *time.Time `db:"password_reset_token_expires" json:"-"`
	VerificationToken         *string    `db:"verification_token" json:"-"`
	VerificationTokenExpires  *time.Time `db:"verification_token_expires" json:"-"`

	Active    bool      `db:"active" json:"-"`
	Verified  bool      `db:"verified" json:"verified"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// IsPasswordChangedAfter сообщает, менялся ли пароль после выдачи access-токена.
// Сравнение идет с точностью до секунды, как и iat в токене.
func (u *User) IsPasswordChangedAfter(tokenIssuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.Unix() > tokenIssuedAt.Unix()
}
