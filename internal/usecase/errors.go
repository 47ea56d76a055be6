package usecase

import "errors"

var (
	ErrForbidden        = errors.New("forbidden")
	ErrMissingFields    = errors.New("missing required fields")
	ErrLoginUnsupported = errors.New("password login not supported by identity provider")
)
