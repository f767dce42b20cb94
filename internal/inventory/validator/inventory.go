package validator

import (
	"errors"
	"fmt"
	"strings"

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

type InventoryValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewInventoryValidator(log *logger.Logger) *InventoryValidator {
	return &InventoryValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *InventoryValidator) ValidateHostels(batch []model.HostelCreate) error {
	for i := range batch {
		if err := v.validate.Struct(&batch[i]); err != nil {
			return v.indexed(i, err)
		}
	}
	return nil
}

func (v *InventoryValidator) ValidateRooms(batch []model.RoomCreate) error {
	for i := range batch {
		if err := v.validate.Struct(&batch[i]); err != nil {
			return v.indexed(i, err)
		}
	}
	return nil
}

func (v *InventoryValidator) indexed(index int, err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return translateValidationErrors(index, validationErrs)
	}
	return err
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
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   fmt.Sprintf("[%d].%s", index, err.Field()),
			Message: message,
		})
	}

	return validationErrors
}
