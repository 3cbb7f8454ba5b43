package domain

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/valyala/fastjson"
)

// ContactSubmission is one contact form payload. It only lives for the
// duration of the request that carried it.
type ContactSubmission struct {
	Name    string
	Email   string
	Message string
}

// NewContactSubmission reads the submission fields out of a parsed JSON
// object. Fields that are absent, null or not strings come back empty.
func NewContactSubmission(val *fastjson.Value) ContactSubmission {
	return ContactSubmission{
		Name:    string(val.GetStringBytes("name")),
		Email:   string(val.GetStringBytes("email")),
		Message: string(val.GetStringBytes("message")),
	}
}

// Validate only checks that every field is present. Formats and lengths are
// not checked.
func (cs *ContactSubmission) Validate() error {
	err := validation.ValidateStruct(cs,
		validation.Field(&cs.Name, validation.Required),
		validation.Field(&cs.Email, validation.Required),
		validation.Field(&cs.Message, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
