package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire name (json first, then yaml) so errors
	// point at the key a user actually wrote.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "yaml"} {
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
}

// FieldError describes the first struct-tag rule a value broke
type FieldError struct {
	Namespace string // dotted path, e.g. "Document.Corp"
	Field     string // wire name of the field
	Tag       string // failed rule, e.g. "required"
	Param     string // rule parameter, if any
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s: field is required", e.Field)
	case "min":
		return fmt.Sprintf("%s: must be at least %s", e.Field, e.Param)
	case "max":
		return fmt.Sprintf("%s: must not exceed %s", e.Field, e.Param)
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s]", e.Field, e.Param)
	case "required_with":
		return fmt.Sprintf("%s: required when %s is set", e.Field, e.Param)
	case "url":
		return fmt.Sprintf("%s: must be a URL", e.Field)
	default:
		return fmt.Sprintf("%s: validation failed (%s)", e.Field, e.Tag)
	}
}

// Struct validates v against its `validate` tags and returns the first
// failure as a *FieldError.
func Struct(v any) error {
	errs := StructAll(v)
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}

// StructAll validates v and returns every failure in field order.
func StructAll(v any) []error {
	if v == nil {
		return []error{errors.New("value cannot be nil")}
	}

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []error{err}
	}

	out := make([]error, 0, len(validationErrs))
	for _, e := range validationErrs {
		out = append(out, &FieldError{
			Namespace: e.Namespace(),
			Field:     e.Field(),
			Tag:       e.Tag(),
			Param:     e.Param(),
		})
	}
	return out
}

// FieldOf returns the wire name of the field behind err when err is a
// *FieldError, or "" otherwise.
func FieldOf(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}
