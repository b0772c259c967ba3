package utils

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"hungrylist/internal/shared/errors"
)

const invalidInputMessage = "Please correct the highlighted input and try again."

var (
	validate     *validator.Validate
	pinRegex     = regexp.MustCompile(`^\d{4}$`)
	hexColorRegx = regexp.MustCompile(`^#[A-Fa-f0-9]{6}$`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Use JSON tag names for validation errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = validate.RegisterValidation("pin", func(fl validator.FieldLevel) bool {
		return pinRegex.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("color6", func(fl validator.FieldLevel) bool {
		return hexColorRegx.MatchString(fl.Field().String())
	})
}

// ValidateStruct validates s and returns a VALIDATION_ERROR listing every
// failing field, or nil.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return errors.NewValidationError(errors.CodeValidation, invalidInputMessage)
	}

	fields := make(map[string]any, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields[fieldError.Field()] = getFieldErrorMessage(fieldError)
	}

	return errors.NewValidationError(errors.CodeValidation, invalidInputMessage).
		WithDetail("fields", fields)
}

// NewBindError reports an unparseable request body or query.
func NewBindError(err error) error {
	return errors.NewValidationError(errors.CodeValidation, invalidInputMessage).WithCause(err)
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "pin":
		return fmt.Sprintf("%s must be exactly 4 digits", field)
	case "color6":
		return fmt.Sprintf("%s must be a hex color like #a1b2c3", field)
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
	}
}
