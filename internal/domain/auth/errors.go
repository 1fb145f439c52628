package auth

import "errors"

var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrMissingClaims = errors.New("required claims are missing from token")
)
