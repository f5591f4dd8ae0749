package requestresponse

import "tour-booking-api/internal/model"

// SignUpRequest : тело запроса регистрации
type SignUpRequest struct {
	Name            string `json:"name" validate:"required,min=3,max=20" example:"Alice"`
	Email           string `json:"email" validate:"required,email" example:"a@x.com"`
	Password        string `json:"password" validate:"required,min=8" example:"password1"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required" example:"password1"`
}

// SignUpResponse : успешный ответ, пароль в user отсутствует
type SignUpResponse struct {
	Status       string `json:"status" example:"success"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	Data         struct {
		User *model.User `json:"user"`
	} `json:"data"`
}

// SignInRequest : тело запроса на аутентификацию
type SignInRequest struct {
	Email    string `json:"email" example:"a@x.com"`
	Password string `json:"password" example:"password1"`
}

// SignInResponse : ответ на успешную аутентификацию
type SignInResponse struct {
	Status       string `json:"status" example:"success"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshTokenRequest : запрос на обновление пары токенов
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" example:"vcSi0369y1I62wOpxZFpgZ"`
	UserID       string `json:"userId" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
}

// RefreshTokenResponse : ответ на успешный запрос
type RefreshTokenResponse struct {
	Status       string `json:"status" example:"success"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// ForgotPasswordRequest : тело запроса на восстановление пароля
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email" example:"a@x.com"`
}

// ResetPasswordRequest : тело запроса на сброс пароля по одноразовому токену
type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=8" example:"new12345"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required" example:"new12345"`
}

// UpdatePasswordRequest : смена пароля аутентифицированным пользователем
type UpdatePasswordRequest struct {
	Password           string `json:"password" example:"password1"`
	NewPassword        string `json:"newPassword" validate:"required,min=8" example:"new12345"`
	NewPasswordConfirm string `json:"newPasswordConfirm" validate:"required" example:"new12345"`
}

// TokenResponse : ответ, содержащий только новый access-токен
type TokenResponse struct {
	Status string `json:"status" example:"success"`
	Token  string `json:"token"`
}

// MessageResponse : ответ без чувствительных данных
type MessageResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"Токен отправлен на почту"`
}

// ErrorDetail : детальная информация об ошибке
type ErrorDetail struct {
	Code int    `json:"code" example:"400"`
	Text string `json:"text" example:"неверный email или пароль"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
