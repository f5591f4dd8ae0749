package security

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
	"tour-booking-api/config"
	"tour-booking-api/internal/model"
	"tour-booking-api/internal/repository"
	"tour-booking-api/internal/util"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	UserContextKey   contextKey = "user"
	ClaimsContextKey contextKey = "claims"

	// AccessTokenCookie : имя cookie, в которой клиенту выдается access-токен
	AccessTokenCookie = "jwt"
)

var (
	ErrTokenExpired = errors.New("токен просрочен")
	ErrTokenInvalid = errors.New("невалидный токен")
)

type Claims struct {
	UserUUID string `json:"user_uuid"`
	jwt.RegisteredClaims
}

type JWTService struct {
	*config.JWTConfig
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg}
}

// SignAccessToken подписывает access-токен с subject = UUID пользователя.
// Токен stateless: его валидность ограничена только exp и проверкой
// PasswordChangedAt на стороне guard-а.
func (service *JWTService) SignAccessToken(userUUID string) (string, error) {
	if service.SecretKey == "" {
		return "", fmt.Errorf("секрет для подписи токена не задан")
	}

	timeDuration, err := time.ParseDuration(service.AccessTokenTTL)
	if err != nil {
		return "", util.LogError("ошибка парсинга access_token_ttl", err)
	}

	claims := Claims{
		UserUUID: userUUID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(timeDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    service.Issuer,
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	accessToken, err := jwtToken.SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", util.LogError("ошибка подписи токена", err)
	}

	return accessToken, nil
}

// ValidateJWT проверяет подпись и срок жизни access-токена.
// Просроченный токен возвращает ErrTokenExpired, любой другой дефект — ErrTokenInvalid.
func (service *JWTService) ValidateJWT(jwtTokenStr string) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return []byte(service.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !jwtToken.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// JWTMiddleware : guard для защищенных маршрутов.
// Достает токен из заголовка Authorization или cookie, валидирует его,
// загружает пользователя и кладет его вместе с claims в контекст запроса.
func JWTMiddleware(jwtService *JWTService, userRepository *repository.UserRepository, db *config.Database) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(handleAuthentication(jwtService, userRepository, db, next))
	}
}

func handleAuthentication(jwtService *JWTService, userRepository *repository.UserRepository, db *config.Database, next http.Handler) func(writer http.ResponseWriter, request *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		token := extractToken(request)
		if token == "" {
			util.HandleError(writer, "токен не найден", http.StatusUnauthorized)
			return
		}

		claims, err := jwtService.ValidateJWT(token)
		if err != nil {
			log.Printf("невалидный токен: %v", err)
			util.HandleError(writer, "невалидный токен", http.StatusUnauthorized)
			return
		}

		user, err := userRepository.FindByUUID(request.Context(), db, claims.UserUUID)
		if err != nil {
			log.Printf("пользователь из токена не найден: %v", err)
			util.HandleError(writer, "пользователь, связанный с этим токеном, не существует", http.StatusUnauthorized)
			return
		}

		if user.IsPasswordChangedAfter(claims.IssuedAt.Time) {
			util.HandleError(writer, "пароль был изменен недавно, войдите заново", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(request.Context(), ClaimsContextKey, claims)
		ctx = context.WithValue(ctx, UserContextKey, user)
		next.ServeHTTP(writer, request.WithContext(ctx))
	}
}

// extractToken : сначала заголовок Bearer, затем cookie "jwt"
func extractToken(request *http.Request) string {
	authorizationHeader := request.Header.Get("Authorization")
	if strings.HasPrefix(authorizationHeader, "Bearer ") {
		return strings.TrimPrefix(authorizationHeader, "Bearer ")
	}

	if cookie, err := request.Cookie(AccessTokenCookie); err == nil {
		return cookie.Value
	}

	return ""
}

// RestrictTo пропускает запрос только для перечисленных ролей
func RestrictTo(roles ...string) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			user, err := GetUserFromContext(request.Context())
			if err != nil {
				util.HandleError(writer, "пользователь не авторизован", http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(writer, request)
					return
				}
			}

			util.HandleError(writer, "у вас нет прав для выполнения этого действия", http.StatusForbidden)
		})
	}
}

func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return claims, nil
}

func GetUserFromContext(ctx context.Context) (*model.User, error) {
	user, ok := ctx.Value(UserContextKey).(*model.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return user, nil
}
