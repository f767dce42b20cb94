package validator

import (
	"errors"
	"fmt"
	"strings"

	apperrors "hostelhub/pkg/errors"
	"hostelhub/pkg/logger"
	"hostelhub/pkg/model"

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

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// ValidateBatch checks every request before any room is reserved. A date
// range violation anywhere in the batch rejects the whole call.
func (v *BookingValidator) ValidateBatch(requests []model.BookingCreate) error {
	for i := range requests {
		if err := v.validate.Struct(&requests[i]); err != nil {
			var validationErrs validator.ValidationErrors
			if errors.As(err, &validationErrs) {
				translated := translateValidationErrors(i, validationErrs)
				return apperrors.Validation("Booking validation failed", map[string]any{"error": translated.Error()})
			}
			return err
		}

		if !requests[i].CheckOutDate.After(requests[i].CheckInDate) {
			return apperrors.InvalidDateRange(map[string]any{
				"index":          i,
				"room_id":        requests[i].RoomID,
				"check_in_date":  requests[i].CheckInDate,
				"check_out_date": requests[i].CheckOutDate,
			})
		}
	}
	return nil
}

func translateValidationErrors(index int, errs validator.ValidationErrors) ValidationErrors {
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
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   fmt.Sprintf("[%d].%s", index, err.Field()),
			Message: message,
		})
	}

	return validationErrors
}
