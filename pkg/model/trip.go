package model

import "time"

const (
	BusTypeStandard = "standard"
	BusTypePremium  = "premium"
	BusTypeVIP      = "vip"
)

// FareMultiplier returns the fare-tier factor applied on top of the
// per-kilometer base fare for a bus category.
func FareMultiplier(busType string) float64 {
	switch busType {
	case BusTypePremium:
		return 1.5
	case BusTypeVIP:
		return 2.0
	default:
		return 1.0
	}
}

// DefaultSeatCount is the fleet capacity per bus category.
func DefaultSeatCount(busType string) int {
	switch busType {
	case BusTypePremium:
		return 40
	case BusTypeVIP:
		return 30
	default:
		return 50
	}
}

// Trip is a dated departure on a route. AvailableSeats is a cached
// aggregate of the trip's seat records; only the reservation engine
// mutates it.
type Trip struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty"`
	RouteID        string    `json:"route_id" bson:"route_id" validate:"required"`
	CompanyID      string    `json:"company_id" bson:"company_id" validate:"required"`
	BusType        string    `json:"bus_type" bson:"bus_type" validate:"required,oneof=standard premium vip"`
	DepartureDate  time.Time `json:"departure_date" bson:"departure_date" validate:"required"`
	DepartureTime  string    `json:"departure_time" bson:"departure_time" validate:"required,timeofday"`
	ArrivalTime    string    `json:"arrival_time" bson:"arrival_time" validate:"required,timeofday"`
	AvailableSeats int       `json:"available_seats" bson:"available_seats"`
	TotalSeats     int       `json:"total_seats" bson:"total_seats" validate:"required,min=1,max=100"`
	Price          float64   `json:"price" bson:"price" validate:"required,gt=0"`
	Features       []string  `json:"features" bson:"features"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

// Seat is one bookable unit of a trip's capacity. SeatNumber is an opaque
// string, unique within the trip; lexical order is not boarding order.
// IsAvailable is the source of truth for bookability.
type Seat struct {
	ID          string  `json:"id,omitempty" bson:"_id,omitempty"`
	TripID      string  `json:"trip_id" bson:"trip_id"`
	SeatNumber  string  `json:"seat_number" bson:"seat_number"`
	IsAvailable bool    `json:"is_available" bson:"is_available"`
	Price       float64 `json:"price" bson:"price"`
}
