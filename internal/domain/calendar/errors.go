package calendar

import "errors"

var (
	// ErrDayNotFound means no Day exists for the person+date, e.g. the
	// contract's calendar was never provisioned. Entry creation must stop.
	ErrDayNotFound    = errors.New("no calendar day found for this person and date")
	ErrPeriodNotFound = errors.New("period not found")
)
