package helper

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator reports fields by their json/query name instead of the Go field name.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// FormatValidationError maps validator errors to field -> message.
// Non-validation errors come back as nil.
func FormatValidationError(err error) map[string]string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	out := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		field := fieldErr.Field()
		switch fieldErr.Tag() {
		case "required":
			out[field] = field + " is required"
		case "email":
			out[field] = "invalid email format"
		case "min":
			out[field] = field + " must be at least " + fieldErr.Param()
		case "max":
			out[field] = field + " must be at most " + fieldErr.Param()
		case "gte":
			out[field] = field + " must be greater than or equal to " + fieldErr.Param()
		case "oneof":
			out[field] = field + " must be one of " + fieldErr.Param()
		case "datetime":
			out[field] = field + " must match " + fieldErr.Param()
		default:
			out[field] = "invalid value"
		}
	}
	return out
}
