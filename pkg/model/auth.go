package model

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	FullName    string `json:"full_name" validate:"required,min=2,max=100"`
	PhoneNumber string `json:"phone_number" validate:"required,min=6,max=20"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
