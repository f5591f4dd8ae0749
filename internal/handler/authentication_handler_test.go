package handler_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"tour-booking-api/config"
	"tour-booking-api/internal/handler"
	"tour-booking-api/internal/model"
	"tour-booking-api/internal/model/requestresponse"
	"tour-booking-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ===== MOCKS =====

// MockAuthenticationService
type MockAuthenticationService struct {
	mock.Mock
}

func (m *MockAuthenticationService) SignUp(ctx context.Context, req *requestresponse.SignUpRequest) (*model.User, *model.TokensPair, error) {
	args := m.Called(ctx, req)
	var user *model.User
	var tokens *model.TokensPair
	if u, ok := args.Get(0).(*model.User); ok {
		user = u
	}
	if t, ok := args.Get(1).(*model.TokensPair); ok {
		tokens = t
	}
	return user, tokens, args.Error(2)
}

func (m *MockAuthenticationService) SignIn(ctx context.Context, email, password string) (*model.TokensPair, error) {
	args := m.Called(ctx, email, password)
	if t, ok := args.Get(0).(*model.TokensPair); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthenticationService) RefreshToken(ctx context.Context, userUUID, presentedToken string) (*model.TokensPair, error) {
	args := m.Called(ctx, userUUID, presentedToken)
	if t, ok := args.Get(0).(*model.TokensPair); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthenticationService) ForgotPassword(ctx context.Context, email, baseURL string) error {
	args := m.Called(ctx, email, baseURL)
	return args.Error(0)
}

func (m *MockAuthenticationService) ResetPassword(ctx context.Context, plaintextToken, password, passwordConfirm string) (string, error) {
	args := m.Called(ctx, plaintextToken, password, passwordConfirm)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticationService) UpdatePassword(ctx context.Context, userUUID, current, newPassword, newPasswordConfirm string) error {
	args := m.Called(ctx, userUUID, current, newPassword, newPasswordConfirm)
	return args.Error(0)
}

func (m *MockAuthenticationService) VerifyAccountStart(ctx context.Context, userUUID, baseURL string) error {
	args := m.Called(ctx, userUUID, baseURL)
	return args.Error(0)
}

func (m *MockAuthenticationService) VerifyAccountEnd(ctx context.Context, plaintextToken string) error {
	args := m.Called(ctx, plaintextToken)
	return args.Error(0)
}

// ===== HELPERS =====

func newTestAuthHandler() (*handler.AuthenticationHandler, *MockAuthenticationService) {
	mockService := new(MockAuthenticationService)
	cfg := &config.AppConfig{Env: "development"}
	cfg.JWT.CookieTTL = 900

	return handler.NewAuthenticationHandler(mockService, cfg), mockService
}

// ===== TESTS =====

// 1. Дубликат email при регистрации отдается как 400, не 409
func TestSignUp_DuplicateEmail_Returns400(t *testing.T) {
	authHandler, mockService := newTestAuthHandler()

	mockService.On("SignUp", mock.Anything, mock.Anything).
		Return(nil, nil, fmt.Errorf("[UserRepo] %w", repository.ErrDuplicateEmail))

	body := bytes.NewBufferString(`{"name":"Alice","email":"a@x.com","password":"password1","passwordConfirm":"password1"}`)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/users/signup", body)
	w := httptest.NewRecorder()

	authHandler.SignUp(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email уже существует")
	mockService.AssertExpectations(t)
}

// 2. Недоступный Redis при обновлении токенов — retryable 503
func TestRefreshToken_StoreUnavailable_Returns503(t *testing.T) {
	authHandler, mockService := newTestAuthHandler()

	mockService.On("RefreshToken", mock.Anything, "u1", "stale-token").
		Return(nil, fmt.Errorf("%w: connection refused", repository.ErrStoreUnavailable))

	body := bytes.NewBufferString(`{"refresh_token":"stale-token","userId":"u1"}`)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", body)
	w := httptest.NewRecorder()

	authHandler.RefreshToken(w, r)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "хранилище токенов недоступно")
	mockService.AssertExpectations(t)
}

// 3. Тот же сбой хранилища при входе — тоже 503, а не общая 500
func TestSignIn_StoreUnavailable_Returns503(t *testing.T) {
	authHandler, mockService := newTestAuthHandler()

	mockService.On("SignIn", mock.Anything, "a@x.com", "password1").
		Return(nil, fmt.Errorf("%w: connection refused", repository.ErrStoreUnavailable))

	body := bytes.NewBufferString(`{"email":"a@x.com","password":"password1"}`)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/users/signin", body)
	w := httptest.NewRecorder()

	authHandler.SignIn(w, r)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	mockService.AssertExpectations(t)
}

// 4. Неверный пароль при входе остается 401
func TestSignIn_WrongPassword_Returns401(t *testing.T) {
	authHandler, mockService := newTestAuthHandler()

	mockService.On("SignIn", mock.Anything, "a@x.com", "wrongpass").
		Return(nil, fmt.Errorf("[AuthenticationService] неверный email или пароль"))

	body := bytes.NewBufferString(`{"email":"a@x.com","password":"wrongpass"}`)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/users/signin", body)
	w := httptest.NewRecorder()

	authHandler.SignIn(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertExpectations(t)
}
