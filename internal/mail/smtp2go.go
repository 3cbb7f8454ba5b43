package mail

import (
	"context"
	"fmt"

	"github.com/smtp2go-oss/smtp2go-go"
)

// SMTP2GOSender relays messages through the smtp2go HTTP API. The API key is
// read by the smtp2go package from SMTP2GO_API_KEY on every send.
//
// The smtp2go client has no Reply-To field, so the visitor's address only
// reaches the operator through the message body.
type SMTP2GOSender struct {
	send func(*smtp2go.Email) (*smtp2go.Smtp2goApiResult, error)
}

func NewSMTP2GOSender() *SMTP2GOSender {
	return &SMTP2GOSender{send: smtp2go.Send}
}

func (s *SMTP2GOSender) Send(_ context.Context, msg *Message) error {
	if err := validate(msg); err != nil {
		return err
	}

	res, err := s.send(&smtp2go.Email{
		From:     msg.From,
		To:       msg.To,
		Subject:  msg.Subject,
		TextBody: msg.Text,
		HtmlBody: msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("smtp2go: %w", err)
	}

	if res != nil && res.Data.Error != "" {
		return APIError{Provider: "smtp2go", Code: res.Data.ErrorCode, Message: res.Data.Error}
	}

	return nil
}
