package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// Mailer delivers magic-link emails. The link itself is minted by the
// auth service; delivery is the only concern here.
type Mailer interface {
	SendMagicLink(ctx context.Context, to, link string) error
}

// SMTPConfig configures the production SMTP mailer.
type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	Password string
}

// SMTPMailer sends magic-link emails over SMTP.
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer creates a mailer that delivers over SMTP.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendMagicLink(ctx context.Context, to, link string) error {
	e := email.NewEmail()
	e.From = fmt.Sprintf("Fitizen <%s>", m.cfg.From)
	e.To = []string{to}
	e.Subject = "Log in to Fitizen"
	e.HTML = []byte(fmt.Sprintf(
		`<p>Click the link below to log in. It expires in 10 minutes.</p><p><a href=%q>Log in to Fitizen</a></p>`,
		link,
	))

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)
	return e.Send(addr, auth)
}

// LogMailer logs the link instead of sending it. Used outside
// production so local logins work without an SMTP account.
type LogMailer struct{}

// NewLogMailer creates a mailer that only logs.
func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) SendMagicLink(ctx context.Context, to, link string) error {
	slog.Info("magic link issued", "to", to, "link", link)
	return nil
}
