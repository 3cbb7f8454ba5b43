package config

import "errors"

var (
	ErrInvalidPort     = errors.New("invalid port")
	ErrUnknownProvider = errors.New("unknown mail provider")
)
