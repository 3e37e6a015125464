package errors

import "errors"

var (
	ErrCompanyNotFound = errors.New("bus company not found")

	ErrRouteNotFound = errors.New("bus route not found")

	ErrTripNotFound = errors.New("bus trip not found")

	ErrSeatNotFound = errors.New("seat not found")
)
