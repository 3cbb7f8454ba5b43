package mail

import (
	"context"
	"fmt"
	"slices"

	"gopkg.in/gomail.v2"
)

type smtpDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender relays messages through an authenticated SMTP server such as
// Gmail. A new connection is opened for every message.
type SMTPSender struct {
	dialer smtpDialer
}

func NewSMTPSender(host string, port int, username, password string) *SMTPSender {
	return &SMTPSender{dialer: gomail.NewDialer(host, port, username, password)}
}

func (s *SMTPSender) Send(_ context.Context, msg *Message) error {
	if err := validate(msg); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", slices.Clone(msg.To)...)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}
