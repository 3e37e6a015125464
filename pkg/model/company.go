package model

import "time"

type Company struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=200"`
	Logo        string    `json:"logo,omitempty" bson:"logo,omitempty" validate:"omitempty,url"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

type Route struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty"`
	CompanyID       string    `json:"company_id" bson:"company_id" validate:"required"`
	OriginCity      string    `json:"origin_city" bson:"origin_city" validate:"required,min=2,max=100"`
	DestinationCity string    `json:"destination_city" bson:"destination_city" validate:"required,min=2,max=100,nefield=OriginCity"`
	DistanceKm      int       `json:"distance_km" bson:"distance_km" validate:"required,gt=0"`
	DurationMinutes int       `json:"duration_minutes" bson:"duration_minutes" validate:"required,gt=0"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}
