package services

import (
	"crmsystem-backend/config"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
)

// Message is an outbound email.
type Message struct {
	Subject string
	Body    string
	To      []string
}

// Mailer delivers a message or reports a transport fault. Delivery is
// best-effort everywhere: callers log failures and keep their mutation.
type Mailer interface {
	Send(msg Message) error
}

// SMTPMailer sends through the configured SMTP relay.
type SMTPMailer struct {
	cfg *config.Config
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(msg Message) error {
	if !m.cfg.SMTPEnabled() {
		return errors.New("SMTP not configured")
	}
	if len(msg.To) == 0 {
		return errors.New("no recipients")
	}

	mail := gomail.NewMessage()
	mail.SetHeader("From", m.cfg.SMTP.From)
	mail.SetHeader("To", msg.To...)
	mail.SetHeader("Subject", msg.Subject)
	mail.SetBody("text/plain", msg.Body)

	dialer := gomail.NewDialer(m.cfg.SMTP.Host, m.cfg.SMTP.Port, m.cfg.SMTP.Username, m.cfg.SMTP.Password)
	if err := dialer.DialAndSend(mail); err != nil {
		return errors.Wrap(err, "send mail")
	}
	return nil
}
