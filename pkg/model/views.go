package model

// Composed read views. Each endpoint that joins entities returns one of
// these named shapes instead of an ad-hoc map.

// TripSummary is a search result: a trip joined with its route and
// operating company.
type TripSummary struct {
	Trip    *Trip    `json:"trip"`
	Route   *Route   `json:"route"`
	Company *Company `json:"company"`
}

// TripDetail adds the full seat map for the seat-selection screen.
type TripDetail struct {
	Trip    *Trip    `json:"trip"`
	Route   *Route   `json:"route"`
	Company *Company `json:"company"`
	Seats   []*Seat  `json:"seats"`
}

// TicketBookingView joins a booking with its trip context at read time.
// Trip, Route and Company are null when the trip has since been removed;
// the booking itself is still returned.
type TicketBookingView struct {
	Booking *TicketBooking `json:"booking"`
	Trip    *Trip          `json:"trip"`
	Route   *Route         `json:"route"`
	Company *Company       `json:"company"`
}
