package model

import "time"

const (
	TicketBookingActive   = "active"
	TicketBookingCanceled = "canceled"
)

// TicketBooking is a caller's claim on one seat of one trip. Status is the
// only field mutated after creation: active -> canceled, once. The record
// is kept as history, never deleted.
type TicketBooking struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty"`
	UserID         string    `json:"user_id" bson:"user_id"`
	TripID         string    `json:"trip_id" bson:"trip_id" validate:"required"`
	SeatNumber     string    `json:"seat_number" bson:"seat_number" validate:"required"`
	PassengerName  string    `json:"passenger_name" bson:"passenger_name" validate:"required,min=2,max=100"`
	PassengerPhone string    `json:"passenger_phone" bson:"passenger_phone" validate:"required"`
	Price          float64   `json:"price" bson:"price"`
	Status         string    `json:"status" bson:"status" validate:"omitempty,oneof=active canceled"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

func (b *TicketBooking) IsCanceled() bool {
	return b.Status == TicketBookingCanceled
}
