package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"tour-booking-api/config"
	"tour-booking-api/internal/model/requestresponse"
	"tour-booking-api/internal/ports"
	"tour-booking-api/internal/security"
	"tour-booking-api/internal/util"

	"github.com/go-chi/chi/v5"
)

type AuthenticationHandler struct {
	ports.AuthenticationService
	cfg *config.AppConfig
}

func NewAuthenticationHandler(authenticationService ports.AuthenticationService, cfg *config.AppConfig) *AuthenticationHandler {
	return &AuthenticationHandler{
		authenticationService,
		cfg,
	}
}

// setAccessTokenCookie дублирует access-токен в cookie "jwt",
// чтобы браузерные клиенты не хранили токен в localStorage
func (h *AuthenticationHandler) setAccessTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     security.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   h.cfg.JWT.CookieTTL,
		HttpOnly: true,
		Secure:   h.cfg.Env == "production",
		SameSite: http.SameSiteLaxMode,
	})
}

// requestBaseURL : базовый адрес для ссылок в письмах
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// SignUp godoc
// @Summary Регистрация пользователя
// @Description Создает пользователя и сразу выдает пару токенов
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.SignUpRequest true "Тело запроса"
// @Success 201 {object} requestresponse.SignUpResponse "Пользователь создан"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректные данные регистрации или email уже занят"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Failure 503 {object} requestresponse.ErrorResponse "Хранилище токенов недоступно"
// @Router /api/v1/users/signup [post]
func (h *AuthenticationHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	user, tokens, err := h.AuthenticationService.SignUp(ctx, &req)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "некорректные данные регистрации"):
			sendErrorResponse(w, 400, "некорректные данные регистрации")
		case strings.Contains(err.Error(), "email уже существует"):
			sendErrorResponse(w, 400, "пользователь с таким email уже существует")
		case strings.Contains(err.Error(), "хранилище"):
			sendErrorResponse(w, 503, "хранилище токенов недоступно, попробуйте позже")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	h.setAccessTokenCookie(w, tokens.AccessToken)

	resp := requestresponse.SignUpResponse{
		Status:       "success",
		Token:        tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}
	resp.Data.User = user

	w.WriteHeader(201)
	json.NewEncoder(w).Encode(resp)
}

// SignIn godoc
// @Summary Аутентификация пользователя
// @Description Получение пары токенов по email и паролю
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.SignInRequest true "Тело запроса"
// @Success 200 {object} requestresponse.SignInResponse "Успешная аутентификация"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный email или пароль"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Failure 503 {object} requestresponse.ErrorResponse "Хранилище токенов недоступно"
// @Router /api/v1/users/signin [post]
func (h *AuthenticationHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	if req.Email == "" || req.Password == "" {
		sendErrorResponse(w, 400, "email и password обязательны")
		return
	}

	tokens, err := h.AuthenticationService.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "неверный email или пароль"):
			util.HandleError(w, "неверный email или пароль", http.StatusUnauthorized)
		case strings.Contains(err.Error(), "хранилище"):
			util.HandleError(w, "хранилище токенов недоступно, попробуйте позже", http.StatusServiceUnavailable)
		default:
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	h.setAccessTokenCookie(w, tokens.AccessToken)

	resp := requestresponse.SignInResponse{
		Status:       "success",
		Token:        tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// SignOut godoc
// @Summary Выход из системы
// @Description Затирает cookie с access-токеном. Сам токен остается валиден до истечения exp.
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.MessageResponse
// @Router /api/v1/users/signout [get]
func (h *AuthenticationHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	http.SetCookie(w, &http.Cookie{
		Name:     security.AccessTokenCookie,
		Value:    "loggedout",
		Path:     "/",
		MaxAge:   10,
		HttpOnly: true,
	})

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.MessageResponse{
		Status:  "success",
		Message: "вы вышли из системы",
	})
}

// RefreshToken godoc
// @Summary Обновление пары токенов
// @Description Выдает новый access-токен. Несовпавший refresh-токен ротируется.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RefreshTokenRequest true "Тело запроса"
// @Success 200 {object} requestresponse.RefreshTokenResponse "Новая пара токенов"
// @Failure 400 {object} requestresponse.ErrorResponse "Отсутствует refresh токен"
// @Failure 404 {object} requestresponse.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Failure 503 {object} requestresponse.ErrorResponse "Хранилище токенов недоступно"
// @Router /api/v1/users/refresh-token [post]
func (h *AuthenticationHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	tokens, err := h.AuthenticationService.RefreshToken(ctx, req.UserID, req.RefreshToken)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "отсутствует refresh токен"):
			sendErrorResponse(w, 400, "отсутствует refresh токен")
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "пользователь не найден")
		case strings.Contains(err.Error(), "хранилище"):
			sendErrorResponse(w, 503, "хранилище токенов недоступно, попробуйте позже")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	h.setAccessTokenCookie(w, tokens.AccessToken)

	resp := requestresponse.RefreshTokenResponse{
		Status:       "success",
		Token:        tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// ForgotPassword godoc
// @Summary Запрос на сброс пароля
// @Description Отправляет на почту ссылку с одноразовым токеном, действительным 10 минут
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.ForgotPasswordRequest true "Тело запроса"
// @Success 200 {object} requestresponse.MessageResponse "Токен отправлен на почту"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} requestresponse.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} requestresponse.ErrorResponse "Ошибка отправки письма"
// @Router /api/v1/users/forgotPassword [post]
func (h *AuthenticationHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	if req.Email == "" {
		sendErrorResponse(w, 400, "email обязателен")
		return
	}

	if err := h.AuthenticationService.ForgotPassword(ctx, req.Email, requestBaseURL(r)); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "пользователь с таким email не найден")
		case strings.Contains(err.Error(), "ошибка отправки письма"):
			sendErrorResponse(w, 500, "ошибка отправки письма, попробуйте позже")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.MessageResponse{
		Status:  "success",
		Message: "токен отправлен на почту",
	})
}

// ResetPassword godoc
// @Summary Сброс пароля по одноразовому токену
// @Description Меняет пароль по токену из письма и возвращает новый access-токен
// @Tags Authentication
// @Accept json
// @Produce json
// @Param token path string true "Одноразовый токен из письма"
// @Param body body requestresponse.ResetPasswordRequest true "Тело запроса"
// @Success 200 {object} requestresponse.TokenResponse "Пароль изменен"
// @Failure 400 {object} requestresponse.ErrorResponse "Токен просрочен или пароли не совпадают"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/users/resetPassword/{token} [patch]
func (h *AuthenticationHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	token := chi.URLParam(r, "token")

	var req requestresponse.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	accessToken, err := h.AuthenticationService.ResetPassword(ctx, token, req.Password, req.PasswordConfirm)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "токен просрочен"):
			sendErrorResponse(w, 400, "токен просрочен или недействителен")
		case strings.Contains(err.Error(), "пароли не совпадают"):
			sendErrorResponse(w, 400, "пароли не совпадают")
		case strings.Contains(err.Error(), "минимум 8 символов"):
			sendErrorResponse(w, 400, "пароль должен содержать минимум 8 символов")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	h.setAccessTokenCookie(w, accessToken)

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.TokenResponse{
		Status: "success",
		Token:  accessToken,
	})
}

// UpdatePassword godoc
// @Summary Смена пароля текущим пользователем
// @Description Требует действующий текущий пароль. После смены все ранее выданные access-токены становятся невалидными.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param body body requestresponse.UpdatePasswordRequest true "Тело запроса"
// @Success 200 {object} requestresponse.MessageResponse "Пароль изменен"
// @Failure 400 {object} requestresponse.ErrorResponse "Пароли не совпадают"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный текущий пароль"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/users/updatePassword [patch]
func (h *AuthenticationHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	user, err := security.GetUserFromContext(ctx)
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	var req requestresponse.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	if err := h.AuthenticationService.UpdatePassword(ctx, user.UUID, req.Password, req.NewPassword, req.NewPasswordConfirm); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "неверный текущий пароль"):
			sendErrorResponse(w, 401, "неверный текущий пароль")
		case strings.Contains(err.Error(), "пароли не совпадают"):
			sendErrorResponse(w, 400, "пароли не совпадают")
		case strings.Contains(err.Error(), "минимум 8 символов"):
			sendErrorResponse(w, 400, "пароль должен содержать минимум 8 символов")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.MessageResponse{
		Status:  "success",
		Message: "пароль изменен, войдите заново",
	})
}

// StartVerification godoc
// @Summary Запрос подтверждения аккаунта
// @Description Отправляет на почту ссылку с одноразовым токеном, действительным 24 часа
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.MessageResponse "Токен отправлен на почту"
// @Failure 400 {object} requestresponse.ErrorResponse "Аккаунт уже подтвержден"
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 500 {object} requestresponse.ErrorResponse "Ошибка отправки письма"
// @Router /api/v1/users/verify [get]
func (h *AuthenticationHandler) StartVerification(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	user, err := security.GetUserFromContext(ctx)
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	if err := h.AuthenticationService.VerifyAccountStart(ctx, user.UUID, requestBaseURL(r)); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "уже подтвержден"):
			sendErrorResponse(w, 400, "аккаунт уже подтвержден")
		case strings.Contains(err.Error(), "ошибка отправки письма"):
			sendErrorResponse(w, 500, "ошибка отправки письма, попробуйте позже")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.MessageResponse{
		Status:  "success",
		Message: "токен отправлен на почту",
	})
}

// FinishVerification godoc
// @Summary Подтверждение аккаунта по токену
// @Description Помечает аккаунт подтвержденным по одноразовому токену из письма
// @Tags Authentication
// @Produce json
// @Param token path string true "Одноразовый токен из письма"
// @Success 200 {object} requestresponse.MessageResponse "Аккаунт подтвержден"
// @Failure 400 {object} requestresponse.ErrorResponse "Токен просрочен или недействителен"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/users/verifyAccount/{token} [patch]
func (h *AuthenticationHandler) FinishVerification(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	token := chi.URLParam(r, "token")

	if err := h.AuthenticationService.VerifyAccountEnd(ctx, token); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "токен просрочен"):
			sendErrorResponse(w, 400, "токен просрочен или недействителен")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.MessageResponse{
		Status:  "success",
		Message: "аккаунт подтвержден",
	})
}
