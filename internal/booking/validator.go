package booking

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"vehicle-booking/internal/models"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format for pickup and return dates.
const DateLayout = "2006-01-02"

var contactRegex = regexp.MustCompile(`^\d{10}$`)

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

// BookingValidator checks a BookingRequest field by field and returns the
// parsed pickup and return dates on success. now is injectable so the
// past-pickup rule stays deterministic under test.
type BookingValidator struct {
	validate *validator.Validate
	now      func() time.Time
}

func NewBookingValidator() *BookingValidator {
	v := validator.New()

	// Registration only fails for an empty tag name.
	if err := v.RegisterValidation("contact10", validateContactNumber); err != nil {
		panic(fmt.Sprintf("register 'contact10' validation: %v", err))
	}

	return &BookingValidator{
		validate: v,
		now:      time.Now,
	}
}

func validateContactNumber(fl validator.FieldLevel) bool {
	return contactRegex.MatchString(fl.Field().String())
}

// Validate applies every rule in order: required fields and formats first,
// then date parsing, then the cross-field date rules. On success it returns
// the parsed pickup and return dates.
func (v *BookingValidator) Validate(req *models.BookingRequest) (time.Time, time.Time, error) {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return time.Time{}, time.Time{}, v.translateValidationErrors(validationErrs)
		}
		return time.Time{}, time.Time{}, err
	}

	pickup, err := time.Parse(DateLayout, req.PickupDate)
	if err != nil {
		return time.Time{}, time.Time{}, ValidationErrors{
			ValidationError{Field: "PickupDate", Message: "pickup date must be a valid date (YYYY-MM-DD)"},
		}
	}
	ret, err := time.Parse(DateLayout, req.ReturnDate)
	if err != nil {
		return time.Time{}, time.Time{}, ValidationErrors{
			ValidationError{Field: "ReturnDate", Message: "return date must be a valid date (YYYY-MM-DD)"},
		}
	}

	if pickup.After(ret) {
		return time.Time{}, time.Time{}, ValidationErrors{
			ValidationError{Field: "PickupDate", Message: "pickup date must be before or same as return date"},
		}
	}

	if pickup.Before(v.today()) {
		return time.Time{}, time.Time{}, ValidationErrors{
			ValidationError{Field: "PickupDate", Message: "pickup date cannot be in the past"},
		}
	}

	return pickup, ret, nil
}

func (v *BookingValidator) today() time.Time {
	return truncateToDate(v.now())
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", fieldLabel(err.Field()))
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", fieldLabel(err.Field()), err.Param())
		case "contact10":
			message = "contact number must be 10 digits"
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

func fieldLabel(field string) string {
	switch field {
	case "FullName":
		return "full name"
	case "VehicleType":
		return "vehicle type"
	case "PickupDate":
		return "pickup date"
	case "ReturnDate":
		return "return date"
	case "ContactNumber":
		return "contact number"
	}
	return field
}
