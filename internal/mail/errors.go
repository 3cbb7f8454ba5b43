package mail

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRecipient is returned when a message has nobody to go to.
	ErrNoRecipient = errors.New("message must have at least one recipient")
	// ErrNoSender is returned when the operator address is not configured.
	ErrNoSender = errors.New("message must have a sender")
)

// APIError is an error reported by a relay's HTTP API in an otherwise
// successful response.
type APIError struct {
	Provider string
	Code     string
	Message  string
}

func (ae APIError) Error() string {
	if ae.Code == "" {
		return fmt.Sprintf("error from %s: %s", ae.Provider, ae.Message)
	}
	return fmt.Sprintf("error from %s: %s (%s)", ae.Provider, ae.Message, ae.Code)
}

func validate(msg *Message) error {
	if msg.From == "" {
		return ErrNoSender
	}
	if len(msg.To) == 0 {
		return ErrNoRecipient
	}
	return nil
}
