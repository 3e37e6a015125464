package errors

import "errors"

var (
	ErrHotelNotFound   = errors.New("hotel not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrBookingNotFound = errors.New("hotel booking not found")
)
