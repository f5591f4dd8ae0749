package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	"tour-booking-api/config"
	"tour-booking-api/internal/model"
	"tour-booking-api/internal/model/requestresponse"
	"tour-booking-api/internal/ports"
	"tour-booking-api/internal/security"
	"tour-booking-api/internal/util"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials  = errors.New("неверный email или пароль")
	ErrMissingRefreshToken = errors.New("отсутствует refresh токен")
	ErrPasswordsMismatch   = errors.New("пароли не совпадают")
	ErrWrongPassword       = errors.New("неверный текущий пароль")
	ErrSingleUseExpired    = errors.New("токен просрочен или недействителен")
	ErrAlreadyVerified     = errors.New("аккаунт уже подтвержден")
	ErrMailDelivery        = errors.New("ошибка отправки письма, попробуйте позже")
)

const (
	resetTokenTTL  = 10 * time.Minute
	verifyTokenTTL = 24 * time.Hour
)

// AuthenticationService управляет жизненным циклом учетных данных:
// регистрация, вход, ротация refresh-токенов, сброс и смена пароля,
// подтверждение аккаунта. Access-токены stateless, отозвать выданный
// токен до истечения exp невозможно — logout лишь затирает cookie,
// а смена пароля отсекает старые токены через password_changed_at.
type AuthenticationService struct {
	userRepository ports.UserRepository
	refreshStore   ports.RefreshTokenStore
	jwtService     ports.JWTServiceInterface
	mailSender     ports.MailSender
	db             *config.Database
	validate       *validator.Validate
}

func NewAuthenticationService(
	userRepository ports.UserRepository,
	refreshStore ports.RefreshTokenStore,
	jwtService ports.JWTServiceInterface,
	mailSender ports.MailSender,
	db *config.Database,
) *AuthenticationService {
	return &AuthenticationService{
		userRepository: userRepository,
		refreshStore:   refreshStore,
		jwtService:     jwtService,
		mailSender:     mailSender,
		db:             db,
		validate:       validator.New(),
	}
}

// SignUp создает пользователя и сразу выдает пару токенов.
// Welcome-письмо отправляется до выдачи токенов, но его сбой
// регистрацию не отменяет.
func (s *AuthenticationService) SignUp(ctx context.Context, req *requestresponse.SignUpRequest) (*model.User, *model.TokensPair, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, nil, fmt.Errorf("некорректные данные регистрации: %w", err)
	}
	if req.Password != req.PasswordConfirm {
		return nil, nil, fmt.Errorf("некорректные данные регистрации: %w", ErrPasswordsMismatch)
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось создать хэш пароля: %w", err)
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Photo:        "default.jpg",
		Role:         model.RoleUser,
		PasswordHash: hash,
	}

	created, err := s.userRepository.CreateUser(ctx, s.db, user)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	if err := s.mailSender.SendWelcome(ctx, created.Email, created.Name, "http://localhost:3000/user"); err != nil {
		log.Printf("не удалось отправить welcome-письмо: %v", err)
	}

	tokens, err := s.issueTokens(ctx, created.UUID, "")
	if err != nil {
		return nil, nil, err
	}

	return created, tokens, nil
}

// SignIn : отсутствие пользователя и неверный пароль дают одну и ту же
// ошибку, чтобы по ответу нельзя было перебрать зарегистрированные email
func (s *AuthenticationService) SignIn(ctx context.Context, email, password string) (*model.TokensPair, error) {
	user, err := s.userRepository.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, fmt.Errorf("%w", ErrInvalidCredentials)
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w", ErrInvalidCredentials)
	}

	return s.issueTokens(ctx, user.UUID, "")
}

// RefreshToken выдает новый access-токен по refresh-токену.
// Несовпавший или отсутствующий в хранилище refresh-токен не считается
// ошибкой: хранилище выполняет ротацию и возвращает новый токен.
func (s *AuthenticationService) RefreshToken(ctx context.Context, userUUID, presentedToken string) (*model.TokensPair, error) {
	if presentedToken == "" {
		return nil, fmt.Errorf("%w", ErrMissingRefreshToken)
	}

	user, err := s.userRepository.FindByUUID(ctx, s.db, userUUID)
	if err != nil {
		return nil, fmt.Errorf("пользователь не найден: %w", err)
	}

	return s.issueTokens(ctx, user.UUID, presentedToken)
}

// issueTokens : access-токен подписывается всегда заново, refresh
// проходит через IssueOrValidate (ротация только при несовпадении)
func (s *AuthenticationService) issueTokens(ctx context.Context, userUUID, presentedRefresh string) (*model.TokensPair, error) {
	refreshToken, err := s.refreshStore.IssueOrValidate(ctx, userUUID, presentedRefresh)
	if err != nil {
		return nil, fmt.Errorf("ошибка хранилища refresh токенов: %w", err)
	}

	accessToken, err := s.jwtService.SignAccessToken(userUUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токенов: %w", err)
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ForgotPassword генерирует одноразовый токен сброса и шлет ссылку на почту.
// При сбое отправки сохраненные хэш и срок токена откатываются, иначе
// в БД остался бы токен, который никто никогда не получит.
func (s *AuthenticationService) ForgotPassword(ctx context.Context, email, baseURL string) error {
	user, err := s.userRepository.FindByEmail(ctx, s.db, email)
	if err != nil {
		return fmt.Errorf("пользователь не найден: %w", err)
	}

	plaintext, hash, err := security.GenerateSingleUseToken()
	if err != nil {
		return fmt.Errorf("ошибка генерации токена сброса: %w", err)
	}

	expires := time.Now().Add(resetTokenTTL)
	if err := s.userRepository.SetResetToken(ctx, s.db, user.UUID, &hash, &expires); err != nil {
		return fmt.Errorf("не удалось сохранить токен сброса: %w", err)
	}

	resetURL := fmt.Sprintf("%s/api/v1/users/resetPassword/%s", baseURL, plaintext)
	if err := s.mailSender.SendPasswordReset(ctx, user.Email, user.Name, resetURL); err != nil {
		if rollbackErr := s.userRepository.SetResetToken(ctx, s.db, user.UUID, nil, nil); rollbackErr != nil {
			log.Printf("не удалось откатить токен сброса: %v", rollbackErr)
		}
		return util.LogError("ошибка отправки письма", fmt.Errorf("%w: %v", ErrMailDelivery, err))
	}

	return nil
}

// ResetPassword меняет пароль по предъявленному одноразовому токену.
// Поиск идет по sha256-хэшу с непросроченным сроком; после успешной смены
// поля токена очищаются, повторное использование невозможно.
// Возвращает свежий access-токен.
func (s *AuthenticationService) ResetPassword(ctx context.Context, plaintextToken, password, passwordConfirm string) (string, error) {
	if password != passwordConfirm {
		return "", fmt.Errorf("%w", ErrPasswordsMismatch)
	}
	if len(password) < 8 {
		return "", fmt.Errorf("пароль должен содержать минимум 8 символов")
	}

	hash := security.HashSingleUseToken(plaintextToken)
	user, err := s.userRepository.FindByResetToken(ctx, s.db, hash)
	if err != nil {
		return "", fmt.Errorf("%w", ErrSingleUseExpired)
	}

	newPasswordHash, err := security.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("не удалось создать хэш пароля: %w", err)
	}

	// UpdatePassword ставит password_changed_at = now - 1s: все ранее
	// выданные access-токены перестают проходить guard
	if err := s.userRepository.UpdatePassword(ctx, s.db, user.UUID, newPasswordHash); err != nil {
		return "", fmt.Errorf("не удалось обновить пароль: %w", err)
	}
	if err := s.userRepository.SetResetToken(ctx, s.db, user.UUID, nil, nil); err != nil {
		return "", fmt.Errorf("не удалось очистить токен сброса: %w", err)
	}

	accessToken, err := s.jwtService.SignAccessToken(user.UUID)
	if err != nil {
		return "", fmt.Errorf("ошибка генерации токенов: %w", err)
	}

	return accessToken, nil
}

// UpdatePassword : смена пароля аутентифицированным пользователем
func (s *AuthenticationService) UpdatePassword(ctx context.Context, userUUID, current, newPassword, newPasswordConfirm string) error {
	user, err := s.userRepository.FindByUUID(ctx, s.db, userUUID)
	if err != nil {
		return fmt.Errorf("пользователь не найден: %w", err)
	}

	if !security.CheckPassword(current, user.PasswordHash) {
		return fmt.Errorf("%w", ErrWrongPassword)
	}
	if newPassword != newPasswordConfirm {
		return fmt.Errorf("%w", ErrPasswordsMismatch)
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("пароль должен содержать минимум 8 символов")
	}

	newPasswordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("не удалось создать хэш пароля: %w", err)
	}

	if err := s.userRepository.UpdatePassword(ctx, s.db, userUUID, newPasswordHash); err != nil {
		return fmt.Errorf("не удалось обновить пароль: %w", err)
	}

	return nil
}

// VerifyAccountStart : выдача токена подтверждения аккаунта.
// Зеркалит ForgotPassword, включая откат полей при сбое отправки.
func (s *AuthenticationService) VerifyAccountStart(ctx context.Context, userUUID, baseURL string) error {
	user, err := s.userRepository.FindByUUID(ctx, s.db, userUUID)
	if err != nil {
		return fmt.Errorf("пользователь не найден: %w", err)
	}
	if user.Verified {
		return fmt.Errorf("%w", ErrAlreadyVerified)
	}

	plaintext, hash, err := security.GenerateSingleUseToken()
	if err != nil {
		return fmt.Errorf("ошибка генерации токена подтверждения: %w", err)
	}

	expires := time.Now().Add(verifyTokenTTL)
	if err := s.userRepository.SetVerificationToken(ctx, s.db, user.UUID, &hash, &expires); err != nil {
		return fmt.Errorf("не удалось сохранить токен подтверждения: %w", err)
	}

	verifyURL := fmt.Sprintf("%s/api/v1/users/verifyAccount/%s", baseURL, plaintext)
	if err := s.mailSender.SendVerification(ctx, user.Email, user.Name, verifyURL); err != nil {
		if rollbackErr := s.userRepository.SetVerificationToken(ctx, s.db, user.UUID, nil, nil); rollbackErr != nil {
			log.Printf("не удалось откатить токен подтверждения: %v", rollbackErr)
		}
		return util.LogError("ошибка отправки письма", fmt.Errorf("%w: %v", ErrMailDelivery, err))
	}

	return nil
}

// VerifyAccountEnd : подтверждение аккаунта по одноразовому токену
func (s *AuthenticationService) VerifyAccountEnd(ctx context.Context, plaintextToken string) error {
	hash := security.HashSingleUseToken(plaintextToken)
	user, err := s.userRepository.FindByVerificationToken(ctx, s.db, hash)
	if err != nil {
		return fmt.Errorf("%w", ErrSingleUseExpired)
	}

	if err := s.userRepository.MarkVerified(ctx, s.db, user.UUID); err != nil {
		return fmt.Errorf("не удалось подтвердить аккаунт: %w", err)
	}

	return nil
}
