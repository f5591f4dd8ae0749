package ports

import (
	"context"
	"tour-booking-api/internal/model"
	"tour-booking-api/internal/model/requestresponse"
)

type AuthenticationService interface {
	SignUp(ctx context.Context, req *requestresponse.SignUpRequest) (*model.User, *model.TokensPair, error)
	SignIn(ctx context.Context, email, password string) (*model.TokensPair, error)
	RefreshToken(ctx context.Context, userUUID, presentedToken string) (*model.TokensPair, error)
	ForgotPassword(ctx context.Context, email, baseURL string) error
	ResetPassword(ctx context.Context, plaintextToken, password, passwordConfirm string) (string, error)
	UpdatePassword(ctx context.Context, userUUID, current, newPassword, newPasswordConfirm string) error
	VerifyAccountStart(ctx context.Context, userUUID, baseURL string) error
	VerifyAccountEnd(ctx context.Context, plaintextToken string) error
}
