// Package validation checks decoded request bodies against their struct tags and converts
// failures into apperr errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kevinaaaquil/myb/backend/apperr"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Field names in messages follow the JSON body, not the Go struct.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &Validator{v: v}
}

// Validate returns nil, a MissingField error when any required field is absent, or a
// Validation error carrying one message per offending field.
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.InvalidPayload("Invalid data").WithCause(err)
	}

	details := make(map[string]string, len(verrs))
	var missing []string
	for _, e := range verrs {
		details[e.Field()] = friendlyMessage(e)
		if e.Tag() == "required" {
			missing = append(missing, e.Field())
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return &apperr.Error{
			Code:    apperr.CodeMissingField,
			Message: strings.Join(missing, ", ") + " required",
			Details: details,
		}
	}
	return apperr.Validation("validation failed", details)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return "must be at least " + e.Param()
	case "max":
		return "must not exceed " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	default:
		return "is invalid"
	}
}
