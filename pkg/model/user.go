package model

import "time"

type User struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty"`
	Email          string    `json:"email" bson:"email" validate:"required,email"`
	FullName       string    `json:"full_name" bson:"full_name" validate:"required,min=2,max=100"`
	PhoneNumber    string    `json:"phone_number" bson:"phone_number" validate:"required"`
	HashedPassword string    `json:"-" bson:"hashed_password"`
	IsActive       bool      `json:"is_active" bson:"is_active"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

// View strips the credential hash before a user record leaves the process.
func (u *User) View() *UserView {
	return &UserView{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

type UserView struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	User        *UserView `json:"user"`
}
