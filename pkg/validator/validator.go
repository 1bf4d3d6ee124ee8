package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// setof=a b c accepts a comma-joined subset of the listed words
	_ = v.RegisterValidation("setof", validateSetOf)
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Var validates a single value against tag and returns the message for field,
// or "" when the value is valid.
func (cv *CustomValidator) Var(field string, value interface{}, tag string) string {
	err := cv.validator.Var(value, tag)
	if err == nil {
		return ""
	}
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		return message(field, validationErrors[0])
	}
	return field + " is invalid"
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errors[e.Field()] = message(e.Field(), e)
		}
	}

	return errors
}

func message(field string, e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + e.Param() + " characters"
	case "max":
		return field + " must be at most " + e.Param() + " characters"
	case "gt":
		return field + " must be greater than " + e.Param()
	case "gte":
		return field + " must be greater than or equal to " + e.Param()
	case "lte":
		return field + " must be less than or equal to " + e.Param()
	case "datetime":
		return field + " must be a date in the format YYYY-MM-DD"
	case "oneof":
		return field + " must be one of: " + e.Param()
	case "setof":
		return field + " must be a combination of: " + e.Param()
	default:
		return field + " is invalid"
	}
}

func validateSetOf(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	allowed := make(map[string]bool)
	for _, word := range strings.Fields(fl.Param()) {
		allowed[word] = true
	}
	seen := make(map[string]bool)
	for _, item := range strings.Split(fl.Field().String(), ",") {
		item = strings.TrimSpace(item)
		if !allowed[item] || seen[item] {
			return false
		}
		seen[item] = true
	}
	return true
}
