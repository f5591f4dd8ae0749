package service_test

import (
	"context"
	"errors"
	"testing"
	"time"
	"tour-booking-api/config"
	"tour-booking-api/internal/model"
	"tour-booking-api/internal/model/requestresponse"
	"tour-booking-api/internal/security"
	"tour-booking-api/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ===== MOCKS =====

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	args := m.Called(ctx, exec, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error) {
	args := m.Called(ctx, exec, uuid)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error) {
	args := m.Called(ctx, exec, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) error {
	args := m.Called(ctx, exec, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, exec sqlx.ExtContext, uuid, newPasswordHash string) error {
	args := m.Called(ctx, exec, uuid, newPasswordHash)
	return args.Error(0)
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, exec sqlx.ExtContext, uuid string, tokenHash *string, expires *time.Time) error {
	args := m.Called(ctx, exec, uuid, tokenHash, expires)
	return args.Error(0)
}

func (m *MockUserRepository) FindByResetToken(ctx context.Context, exec sqlx.ExtContext, tokenHash string) (*model.User, error) {
	args := m.Called(ctx, exec, tokenHash)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) SetVerificationToken(ctx context.Context, exec sqlx.ExtContext, uuid string, tokenHash *string, expires *time.Time) error {
	args := m.Called(ctx, exec, uuid, tokenHash, expires)
	return args.Error(0)
}

func (m *MockUserRepository) FindByVerificationToken(ctx context.Context, exec sqlx.ExtContext, tokenHash string) (*model.User, error) {
	args := m.Called(ctx, exec, tokenHash)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) MarkVerified(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	args := m.Called(ctx, exec, uuid)
	return args.Error(0)
}

func (m *MockUserRepository) DeactivateUser(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	args := m.Called(ctx, exec, uuid)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	args := m.Called(ctx, exec, uuid)
	return args.Error(0)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, exec sqlx.ExtContext, cursor string, limit int) ([]*model.User, string, error) {
	args := m.Called(ctx, exec, cursor, limit)
	if users, ok := args.Get(0).([]*model.User); ok {
		return users, args.String(1), args.Error(2)
	}
	return nil, "", args.Error(2)
}

// MockRefreshStore
type MockRefreshStore struct {
	mock.Mock
}

func (m *MockRefreshStore) Get(ctx context.Context, userUUID string) (string, error) {
	args := m.Called(ctx, userUUID)
	return args.String(0), args.Error(1)
}

func (m *MockRefreshStore) Set(ctx context.Context, userUUID string, token string) error {
	args := m.Called(ctx, userUUID, token)
	return args.Error(0)
}

func (m *MockRefreshStore) IssueOrValidate(ctx context.Context, userUUID string, presentedToken string) (string, error) {
	args := m.Called(ctx, userUUID, presentedToken)
	return args.String(0), args.Error(1)
}

// MockJWTService
type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) SignAccessToken(userUUID string) (string, error) {
	args := m.Called(userUUID)
	return args.String(0), args.Error(1)
}

func (m *MockJWTService) ValidateJWT(tokenString string) (*security.Claims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*security.Claims); ok {
		return claims, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockMailSender
type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) SendWelcome(ctx context.Context, to, name, url string) error {
	args := m.Called(ctx, to, name, url)
	return args.Error(0)
}

func (m *MockMailSender) SendPasswordReset(ctx context.Context, to, name, resetURL string) error {
	args := m.Called(ctx, to, name, resetURL)
	return args.Error(0)
}

func (m *MockMailSender) SendVerification(ctx context.Context, to, name, verifyURL string) error {
	args := m.Called(ctx, to, name, verifyURL)
	return args.Error(0)
}

// ===== HELPERS =====

func newTestAuthService() (*service.AuthenticationService, *MockUserRepository, *MockRefreshStore, *MockJWTService, *MockMailSender) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshStore := new(MockRefreshStore)
	mockJWTService := new(MockJWTService)
	mockMailSender := new(MockMailSender)

	svc := service.NewAuthenticationService(
		mockUserRepo,
		mockRefreshStore,
		mockJWTService,
		mockMailSender,
		&config.Database{},
	)

	return svc, mockUserRepo, mockRefreshStore, mockJWTService, mockMailSender
}

// ===== TESTS =====

// 1. Регистрация: пароли не совпадают
func TestSignUp_PasswordsMismatch(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService()

	_, _, err := svc.SignUp(context.Background(), &requestresponse.SignUpRequest{
		Name:            "Alice",
		Email:           "a@x.com",
		Password:        "password1",
		PasswordConfirm: "password2",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "некорректные данные регистрации")
}

// 2. Регистрация: успех, в БД уходит bcrypt-хэш, а не пароль
func TestSignUp_Success(t *testing.T) {
	svc, mockUserRepo, mockRefreshStore, mockJWTService, mockMailSender := newTestAuthService()
	ctx := context.Background()

	var storedUser *model.User
	mockUserRepo.On("CreateUser", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			storedUser = args.Get(2).(*model.User)
		}).
		Return(&model.User{UUID: "u1", Name: "Alice", Email: "a@x.com"}, nil)
	mockMailSender.On("SendWelcome", ctx, "a@x.com", "Alice", mock.Anything).Return(nil)
	mockRefreshStore.On("IssueOrValidate", ctx, "u1", "").Return("ref-token", nil)
	mockJWTService.On("SignAccessToken", "u1").Return("acc-token", nil)

	user, tokens, err := svc.SignUp(ctx, &requestresponse.SignUpRequest{
		Name:            "Alice",
		Email:           "a@x.com",
		Password:        "password1",
		PasswordConfirm: "password1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "u1", user.UUID)
	assert.Equal(t, "acc-token", tokens.AccessToken)
	assert.Equal(t, "ref-token", tokens.RefreshToken)
	assert.NotEqual(t, "password1", storedUser.PasswordHash)
	assert.True(t, security.CheckPassword("password1", storedUser.PasswordHash))

	mockUserRepo.AssertExpectations(t)
	mockRefreshStore.AssertExpectations(t)
	mockJWTService.AssertExpectations(t)
	mockMailSender.AssertExpectations(t)
}

// 3. Регистрация: сбой welcome-письма не отменяет регистрацию
func TestSignUp_MailFailureIsNotFatal(t *testing.T) {
	svc, mockUserRepo, mockRefreshStore, mockJWTService, mockMailSender := newTestAuthService()
	ctx := context.Background()

	mockUserRepo.On("CreateUser", ctx, mock.Anything, mock.Anything).
		Return(&model.User{UUID: "u1", Name: "Alice", Email: "a@x.com"}, nil)
	mockMailSender.On("SendWelcome", ctx, "a@x.com", "Alice", mock.Anything).
		Return(errors.New("smtp down"))
	mockRefreshStore.On("IssueOrValidate", ctx, "u1", "").Return("ref-token", nil)
	mockJWTService.On("SignAccessToken", "u1").Return("acc-token", nil)

	_, tokens, err := svc.SignUp(ctx, &requestresponse.SignUpRequest{
		Name:            "Alice",
		Email:           "a@x.com",
		Password:        "password1",
		PasswordConfirm: "password1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "acc-token", tokens.AccessToken)
	mockMailSender.AssertExpectations(t)
}

// 4. Вход: пользователь не найден
func TestSignIn_UserNotFound(t *testing.T) {
	svc, mockUserRepo, _, _, _ := newTestAuthService()
	ctx := context.Background()

	mockUserRepo.On("FindByEmail", ctx, mock.Anything, "a@x.com").
		Return(nil, errors.New("not found"))

	_, err := svc.SignIn(ctx, "a@x.com", "password1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "неверный email или пароль")
	mockUserRepo.AssertExpectations(t)
}

// 5. Вход: неверный пароль дает ту же ошибку, что и неизвестный email
func TestSignIn_WrongPassword(t *testing.T) {
	svc, mockUserRepo, _, _, _ := newTestAuthService()
	ctx := context.Background()

	hash, _ := security.HashPassword("goodpass1")
	mockUserRepo.On("FindByEmail", ctx, mock.Anything, "a@x.com").
		Return(&model.User{UUID: "u1", PasswordHash: hash}, nil)

	_, err := svc.SignIn(ctx, "a@x.com", "badpass11")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "неверный email или пароль")
	mockUserRepo.AssertExpectations(t)
}

// 6. Вход: успех
func TestSignIn_Success(t *testing.T) {
	svc, mockUserRepo, mockRefreshStore, mockJWTService, _ := newTestAuthService()
	ctx := context.Background()

	hash, _ := security.HashPassword("goodpass1")
	mockUserRepo.On("FindByEmail", ctx, mock.Anything, "a@x.com").
		Return(&model.User{UUID: "u1", PasswordHash: hash}, nil)
	mockRefreshStore.On("IssueOrValidate", ctx, "u1", "").Return("ref-token", nil)
	mockJWTService.On("SignAccessToken", "u1").Return("acc-token", nil)

	tokens, err := svc.SignIn(ctx, "a@x.com", "goodpass1")

	assert.NoError(t, err)
	assert.Equal(t, "acc-token", tokens.AccessToken)
	assert.Equal(t, "ref-token", tokens.RefreshToken)
	mockUserRepo.AssertExpectations(t)
	mockRefreshStore.AssertExpectations(t)
	mockJWTService.AssertExpectations(t)
}

// 7. Обновление токенов: refresh не передан
func TestRefreshToken_MissingToken(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService()

	_, err := svc.RefreshToken(context.Background(), "u1", "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "отсутствует refresh токен")
}

// 8. Обновление токенов: пользователь не найден
func TestRefreshToken_UserNotFound(t *testing.T) {
	svc, mockUserRepo, _, _, _ := newTestAuthService()
	ctx := context.Background()

	mockUserRepo.On("FindByUUID", ctx, mock.Anything, "u1").
		Return(nil, errors.New("not found"))

	_, err := svc.RefreshToken(ctx, "u1", "some-refresh")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "не найден")
	mockUserRepo.AssertExpectations(t)
}

// 9. Обновление токенов: хранилище вернуло ротированный refresh
func TestRefreshToken_Rotation(t *testing.T) {
	svc, mockUserRepo, mockRefreshStore, mockJWTService, _ := newTestAuthService()
	ctx := context.Background()

	mockUserRepo.On("FindByUUID", ctx, mock.Anything, "u1").
		Return(&model.User{UUID: "u1"}, nil)
	mockRefreshStore.On("IssueOrValidate", ctx, "u1", "stale-refresh").
		Return("rotated-refresh", nil)
	mockJWTService.On("SignAccessToken", "u1").Return("new-access", nil)

	tokens, err := svc.RefreshToken(ctx, "u1", "stale-refresh")

	assert.NoError(t, err)
	assert.Equal(t, "new-access", tokens.AccessToken)
	assert.Equal(t, "rotated-refresh", tokens.RefreshToken)
	mockRefreshStore.AssertExpectations(t)
}

// 10. Восстановление пароля: в письмо уходит плейнтекст-токен,
// в БД сохраняется только хэш
func TestForgotPassword_StoresHashSendsPlaintext(t *testing.T) {
	svc, mockUserRepo, _, _, mockMailSender := newTestAuthService()
	ctx := context.Background()

	var storedHash string
	var sentURL string

	mockUserRepo.On("FindByEmail", ctx, mock.Anything, "a@x.com").
		Return(&model.User{UUID: "u1", Name: "Alice", Email: "a@x.com"}, nil)
	mockUserRepo.On("SetResetToken", ctx, mock.Anything, "u1", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			storedHash = *args.Get(3).(*string)
		}).
		Return(nil)
	mockMailSender.On("SendPasswordReset", ctx, "a@x.com", "Alice", mock.Anything).
		Run(func(args mock.Arguments) {
			sentURL = args.String(3)
		}).
		Return(nil)

	err := svc.ForgotPassword(ctx, "a@x.com", "http://localhost:8080")

	assert.NoError(t, err)
	assert.NotEmpty(t, storedHash)
	assert.NotContains(t, sentURL, storedHash)

	// хэш из БД должен соответствовать плейнтексту из ссылки
	plaintext := sentURL[len("http://localhost:8080/api/v1/users/resetPassword/"):]
	assert.Equal(t, storedHash, security.HashSingleUseToken(plaintext))

	mockUserRepo.AssertExpectations(t)
	mockMailSender.AssertExpectations(t)
}

// 11. Восстановление пароля: при сбое отправки поля токена откатываются
func TestForgotPassword_MailFailureRollsBack(t *testing.T) {
	svc, mockUserRepo, _, _, mockMailSender := newTestAuthService()
	ctx := context.Background()

	mockUserRepo.On("FindByEmail", ctx, mock.Anything, "a@x.com").
		Return(&model.User{UUID: "u1", Name: "Alice", Email: "a@x.com"}, nil)
	mockUserRepo.On("SetResetToken", ctx, mock.Anything, "u1", mock.AnythingOfType("*string"), mock.AnythingOfType("*time.Time")).
		Return(nil).Once()
	mockMailSender.On("SendPasswordReset", ctx, "a@x.com", "Alice", mock.Anything).
		Return(errors.New("smtp down"))
	mockUserRepo.On("SetResetToken", ctx, mock.Anything, "u1", (*string)(nil), (*time.Time)(nil)).
		Return(nil).Once()

	err := svc.ForgotPassword(ctx, "a@x.com", "http://localhost:8080")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ошибка отправки письма")
	mockUserRepo.AssertExpectations(t)
	mockMailSender.AssertExpectations(t)
}

// 12. Сброс пароля: просроченный или неизвестный токен
func TestResetPassword_ExpiredToken(t *testing.T) {
	svc, mockUserRepo, _, _, _ := newTestAuthService()
	ctx := context.Background()

	mockUserRepo.On("FindByResetToken", ctx, mock.Anything, mock.Anything).
		Return(nil, errors.New("not found"))

	_, err := svc.ResetPassword(ctx, "sometoken", "newpass11", "newpass11")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "токен просрочен")
	mockUserRepo.AssertExpectations(t)
}

// 13. Сброс пароля: успех, поля токена очищаются
func TestResetPassword_Success(t *testing.T) {
	svc, mockUserRepo, _, mockJWTService, _ := newTestAuthService()
	ctx := context.Background()

	mockUserRepo.On("FindByResetToken", ctx, mock.Anything, security.HashSingleUseToken("sometoken")).
		Return(&model.User{UUID: "u1"}, nil)
	mockUserRepo.On("UpdatePassword", ctx, mock.Anything, "u1", mock.Anything).Return(nil)
	mockUserRepo.On("SetResetToken", ctx, mock.Anything, "u1", (*string)(nil), (*time.Time)(nil)).Return(nil)
	mockJWTService.On("SignAccessToken", "u1").Return("fresh-access", nil)

	token, err := svc.ResetPassword(ctx, "sometoken", "newpass11", "newpass11")

	assert.NoError(t, err)
	assert.Equal(t, "fresh-access", token)
	mockUserRepo.AssertExpectations(t)
	mockJWTService.AssertExpectations(t)
}

// 14. Смена пароля: неверный текущий пароль
func TestUpdatePassword_WrongCurrent(t *testing.T) {
	svc, mockUserRepo, _, _, _ := newTestAuthService()
	ctx := context.Background()

	hash, _ := security.HashPassword("current11")
	mockUserRepo.On("FindByUUID", ctx, mock.Anything, "u1").
		Return(&model.User{UUID: "u1", PasswordHash: hash}, nil)

	err := svc.UpdatePassword(ctx, "u1", "wrongpass", "newpass11", "newpass11")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "неверный текущий пароль")
	mockUserRepo.AssertExpectations(t)
}

// 15. Смена пароля: успех
func TestUpdatePassword_Success(t *testing.T) {
	svc, mockUserRepo, _, _, _ := newTestAuthService()
	ctx := context.Background()

	hash, _ := security.HashPassword("current11")
	mockUserRepo.On("FindByUUID", ctx, mock.Anything, "u1").
		Return(&model.User{UUID: "u1", PasswordHash: hash}, nil)
	mockUserRepo.On("UpdatePassword", ctx, mock.Anything, "u1", mock.Anything).Return(nil)

	err := svc.UpdatePassword(ctx, "u1", "current11", "newpass11", "newpass11")

	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
}

// 16. Подтверждение аккаунта: токен консумируется один раз
func TestVerifyAccountEnd_Success(t *testing.T) {
	svc, mockUserRepo, _, _, _ := newTestAuthService()
	ctx := context.Background()

	mockUserRepo.On("FindByVerificationToken", ctx, mock.Anything, security.HashSingleUseToken("vtoken")).
		Return(&model.User{UUID: "u1"}, nil)
	mockUserRepo.On("MarkVerified", ctx, mock.Anything, "u1").Return(nil)

	err := svc.VerifyAccountEnd(ctx, "vtoken")

	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
}

// 17. Подтверждение аккаунта: уже подтвержден
func TestVerifyAccountStart_AlreadyVerified(t *testing.T) {
	svc, mockUserRepo, _, _, _ := newTestAuthService()
	ctx := context.Background()

	mockUserRepo.On("FindByUUID", ctx, mock.Anything, "u1").
		Return(&model.User{UUID: "u1", Verified: true}, nil)

	err := svc.VerifyAccountStart(ctx, "u1", "http://localhost:8080")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "уже подтвержден")
	mockUserRepo.AssertExpectations(t)
}
