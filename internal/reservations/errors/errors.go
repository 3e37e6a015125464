package errors

import "errors"

var (
	ErrBookingNotFound = errors.New("ticket booking not found")
)
