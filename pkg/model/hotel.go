package model

import "time"

type Hotel struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=200"`
	City         string    `json:"city" bson:"city" validate:"required,min=2,max=100"`
	Address      string    `json:"address" bson:"address" validate:"required"`
	Description  string    `json:"description" bson:"description" validate:"required"`
	Stars        int       `json:"stars" bson:"stars" validate:"required,min=1,max=5"`
	Amenities    []string  `json:"amenities" bson:"amenities"`
	Images       []string  `json:"images" bson:"images"`
	Latitude     *float64  `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty" bson:"longitude,omitempty"`
	Rating       float64   `json:"rating" bson:"rating"`
	ReviewsCount int       `json:"reviews_count" bson:"reviews_count"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

type Room struct {
	ID            string   `json:"id,omitempty" bson:"_id,omitempty"`
	HotelID       string   `json:"hotel_id" bson:"hotel_id" validate:"required"`
	Name          string   `json:"name" bson:"name" validate:"required"`
	Description   string   `json:"description" bson:"description"`
	PricePerNight float64  `json:"price_per_night" bson:"price_per_night" validate:"required,gt=0"`
	Capacity      int      `json:"capacity" bson:"capacity" validate:"required,min=1"`
	Available     bool     `json:"available" bson:"available"`
	Images        []string `json:"images" bson:"images"`
}
