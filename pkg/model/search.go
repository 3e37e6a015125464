package model

// TripSearchRequest is the body of a trip search. DepartureDate accepts a
// calendar date (2006-01-02) or an RFC3339 timestamp; either way the search
// covers the whole calendar day in UTC. PassengersCount defaults to 1.
// HotelSearchRequest filters hotels by city, case-insensitively.
type HotelSearchRequest struct {
	City     string `json:"city" validate:"required,min=2,max=100"`
	MinStars int    `json:"min_stars" validate:"omitempty,min=1,max=5"`
}

type TripSearchRequest struct {
	OriginCity      string `json:"origin_city" validate:"required,min=2,max=100"`
	DestinationCity string `json:"destination_city" validate:"required,min=2,max=100"`
	DepartureDate   string `json:"departure_date" validate:"required"`
	PassengersCount int    `json:"passengers_count" validate:"omitempty,min=1,max=10"`
}
