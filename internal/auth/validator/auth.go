package validator

import (
	"errors"
	"fmt"
	"strings"

	"rihla/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type AuthValidator struct {
	validate *validator.Validate
}

func NewAuthValidator() *AuthValidator {
	return &AuthValidator{
		validate: validator.New(),
	}
}

func (v *AuthValidator) ValidateRegister(req *model.RegisterRequest) error {
	return v.translate(v.validate.Struct(req))
}

func (v *AuthValidator) ValidateLogin(req *model.LoginRequest) error {
	return v.translate(v.validate.Struct(req))
}

func (v *AuthValidator) translate(err error) error {
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	var translated ValidationErrors
	for _, fieldErr := range validationErrs {
		message := fieldErr.Error()
		switch fieldErr.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", fieldErr.Field())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", fieldErr.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", fieldErr.Field(), fieldErr.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", fieldErr.Field(), fieldErr.Param())
		}
		translated = append(translated, ValidationError{
			Field:   fieldErr.Field(),
			Message: message,
		})
	}
	return translated
}
