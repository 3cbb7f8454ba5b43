package domain

import "errors"

var (
	// ErrValidation will be returned if a submission is missing a required field
	ErrValidation = errors.New("invalid contact submission")
)
