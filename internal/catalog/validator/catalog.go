package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"rihla/pkg/logger"
	"rihla/pkg/model"

	"github.com/go-playground/validator/v10"
)

var timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

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

// CatalogValidator validates operator-supplied inventory records before
// they reach storage.
type CatalogValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewCatalogValidator(log *logger.Logger) *CatalogValidator {
	v := validator.New()

	if err := v.RegisterValidation("timeofday", validateTimeOfDay); err != nil {
		log.Fatal("Failed to register 'timeofday' validator",
			"error", err,
		)
	}

	return &CatalogValidator{
		validate: v,
		logger:   log,
	}
}

func validateTimeOfDay(fl validator.FieldLevel) bool {
	return timeOfDayRegex.MatchString(fl.Field().String())
}

func (v *CatalogValidator) ValidateCompany(company *model.Company) error {
	return v.structErrors(v.validate.Struct(company))
}

func (v *CatalogValidator) ValidateRoute(route *model.Route) error {
	return v.structErrors(v.validate.Struct(route))
}

func (v *CatalogValidator) ValidateTrip(trip *model.Trip) error {
	return v.structErrors(v.validate.Struct(trip))
}

func (v *CatalogValidator) ValidateSearch(req *model.TripSearchRequest) error {
	return v.structErrors(v.validate.Struct(req))
}

func (v *CatalogValidator) structErrors(err error) error {
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return v.translateValidationErrors(validationErrs)
	}
	return err
}

func (v *CatalogValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "timeofday":
			message = fmt.Sprintf("%s must be in HH:MM format (00:00-23:59)", err.Field())
		case "nefield":
			message = fmt.Sprintf("%s must differ from %s", err.Field(), err.Param())
		case "url":
			message = fmt.Sprintf("%s must be a valid URL", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
