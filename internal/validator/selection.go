package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"regionview/internal/region"
	"regionview/pkg/logger"
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

// Details flattens the errors for an API error body.
func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

// SelectionRequest is the body of a manual region/time choice.
type SelectionRequest struct {
	Region string `json:"region" validate:"required,valid_region"`
	Time   string `json:"time" validate:"required,valid_period"`
}

func (s SelectionRequest) Combination() region.Combination {
	return region.Combination{
		Region: region.Region(strings.ToLower(strings.TrimSpace(s.Region))),
		Period: region.TimePeriod(strings.ToLower(strings.TrimSpace(s.Time))),
	}
}

type SelectionValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewSelectionValidator(log *logger.Logger) *SelectionValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("valid_region", validateRegion); err != nil {
		log.Fatal("Failed to register 'valid_region' validator", "error", err)
	}
	if err := v.RegisterValidation("valid_period", validatePeriod); err != nil {
		log.Fatal("Failed to register 'valid_period' validator", "error", err)
	}

	log.Debug("Selection validator initialized successfully")

	return &SelectionValidator{
		validate: v,
		logger:   log,
	}
}

func validateRegion(fl validator.FieldLevel) bool {
	_, err := region.ParseRegion(fl.Field().String())
	return err == nil
}

func validatePeriod(fl validator.FieldLevel) bool {
	_, err := region.ParsePeriod(fl.Field().String())
	return err == nil
}

func (v *SelectionValidator) Validate(req *SelectionRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *SelectionValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "valid_region":
			message = fmt.Sprintf("region must be one of %s", joinValues(region.Regions))
		case "valid_period":
			message = fmt.Sprintf("time must be one of %s", joinValues(region.Periods))
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
