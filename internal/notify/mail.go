// Package notify delivers notifications outside the dashboard.
package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"edeon_enerji/internal/config"
	"edeon_enerji/pkg/logger"
)

// Dialer sends composed messages. *gomail.Dialer satisfies it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends HTML mail over SMTP.
type Mailer struct {
	dialer Dialer
	from   string
}

// NewMailer returns nil when SMTP is not configured.
func NewMailer(cfg *config.Config) *Mailer {
	if !cfg.MailEnabled() {
		logger.Info("SMTP not configured, mail notifications disabled")
		return nil
	}
	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	return NewMailerWithDialer(d, cfg.SMTPFrom)
}

// NewMailerWithDialer builds a mailer on an existing dialer.
func NewMailerWithDialer(d Dialer, from string) *Mailer {
	return &Mailer{dialer: d, from: from}
}

// Send delivers one message to all recipients.
func (m *Mailer) Send(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := compose(m.from, to, subject, body)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail %q: %w", subject, err)
	}

	logger.Debug(fmt.Sprintf("✓ Mail sent: %s (%d recipients)", subject, len(to)))
	return nil
}

func compose(from string, to []string, subject, body string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("EDEON ENERJİ <%s>", from))
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return msg
}
