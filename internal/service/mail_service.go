package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"tour-booking-api/config"

	"gopkg.in/gomail.v2"
)

const mailTemplateText = `<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Здравствуйте, {{.Name}}!</h2>
  <p>{{.Body}}</p>
  {{if .URL}}<p><a href="{{.URL}}" style="background: #55c57a; color: #fff; padding: 10px 20px; text-decoration: none;">{{.Action}}</a></p>{{end}}
  <p>— команда Tour Booking</p>
</body>
</html>`

var mailTemplate = template.Must(template.New("mail").Parse(mailTemplateText))

type mailTemplateData struct {
	Name   string
	Body   string
	URL    string
	Action string
}

// MailService : SMTP-отправка через gomail, письма собираются из
// единого HTML-шаблона
type MailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailService(cfg *config.MailConfig) *MailService {
	return &MailService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *MailService) SendWelcome(ctx context.Context, to, name, url string) error {
	return s.send(ctx, to, "Добро пожаловать в Tour Booking!", mailTemplateData{
		Name:   name,
		Body:   "Рады видеть вас среди наших путешественников. Загляните в личный кабинет и выберите свой первый тур.",
		URL:    url,
		Action: "Личный кабинет",
	})
}

func (s *MailService) SendPasswordReset(ctx context.Context, to, name, resetURL string) error {
	return s.send(ctx, to, "Сброс пароля (ссылка действительна 10 минут)", mailTemplateData{
		Name:   name,
		Body:   "Вы запросили сброс пароля. Перейдите по ссылке, чтобы задать новый пароль. Если вы ничего не запрашивали, просто проигнорируйте это письмо.",
		URL:    resetURL,
		Action: "Сбросить пароль",
	})
}

func (s *MailService) SendVerification(ctx context.Context, to, name, verifyURL string) error {
	return s.send(ctx, to, "Подтверждение аккаунта", mailTemplateData{
		Name:   name,
		Body:   "Подтвердите свой email, перейдя по ссылке. Ссылка действительна 24 часа.",
		URL:    verifyURL,
		Action: "Подтвердить email",
	})
}

func (s *MailService) send(ctx context.Context, to, subject string, data mailTemplateData) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("[MailService] отправка отменена: %w", err)
	}

	var body bytes.Buffer
	if err := mailTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("[MailService] ошибка рендеринга шаблона: %w", err)
	}

	message := gomail.NewMessage()
	message.SetHeader("From", s.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", body.String())

	if err := s.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("[MailService] ошибка отправки письма: %w", err)
	}
	return nil
}
