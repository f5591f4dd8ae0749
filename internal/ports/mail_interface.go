package ports

import "context"

// MailSender : исходящие письма. Отправка синхронная, но в sign-up
// сбой welcome-письма не считается фатальным для вызывающего кода.
type MailSender interface {
	SendWelcome(ctx context.Context, to, name, url string) error
	SendPasswordReset(ctx context.Context, to, name, resetURL string) error
	SendVerification(ctx context.Context, to, name, verifyURL string) error
}
