package model

import "time"

const (
	HotelBookingActive   = "active"
	HotelBookingCanceled = "canceled"
)

// HotelBooking has no availability bookkeeping: rooms are not blocked and
// bookings are accepted unconditionally.
type HotelBooking struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty"`
	UserID          string    `json:"user_id" bson:"user_id"`
	HotelID         string    `json:"hotel_id" bson:"hotel_id" validate:"required"`
	RoomID          string    `json:"room_id" bson:"room_id" validate:"required"`
	CheckInDate     time.Time `json:"check_in_date" bson:"check_in_date" validate:"required"`
	CheckOutDate    time.Time `json:"check_out_date" bson:"check_out_date" validate:"required"`
	GuestsCount     int       `json:"guests_count" bson:"guests_count" validate:"required,min=1"`
	SpecialRequests string    `json:"special_requests,omitempty" bson:"special_requests,omitempty"`
	Status          string    `json:"status" bson:"status"`
	TotalPrice      float64   `json:"total_price" bson:"total_price"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}
