package user

import "errors"

var (
	ErrManagerAccessRequired = errors.New("manager role required")
	ErrHRAccessRequired      = errors.New("hr role required")
	ErrFinanceAccessRequired = errors.New("finance role required")
)
