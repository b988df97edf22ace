// Package validation checks request bodies against their struct tags and
// turns failures into per-field messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hugh/orgroster/internal/apperr"
	"github.com/nyaruka/phonenumbers"
)

const DefaultRegion = "US"

type Validator struct {
	v      *validator.Validate
	region string
}

// New builds a validator whose "phone" tag parses numbers against region
// when they carry no country prefix.
func New(region string) *Validator {
	if region == "" {
		region = DefaultRegion
	}
	val := &Validator{v: validator.New(validator.WithRequiredStructEnabled()), region: strings.ToUpper(region)}

	// Report fields by their JSON names.
	val.v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = val.v.RegisterValidation("phone", val.validPhone)

	return val
}

// Struct validates s and returns an apperr validation failure listing every
// offending field, or nil.
func (val *Validator) Struct(s interface{}) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperr.Validation("Invalid request body", nil)
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := details[fe.Field()]; !seen {
			details[fe.Field()] = message(fe)
		}
	}
	return apperr.Validation("Validation failed", details)
}

// NormalizePhone formats a phone number as E.164. Numbers that do not parse
// as a valid number are returned trimmed but otherwise untouched.
func (val *Validator) NormalizePhone(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, val.region)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return trimmed
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

func (val *Validator) validPhone(fl validator.FieldLevel) bool {
	_, err := phonenumbers.Parse(strings.TrimSpace(fl.Field().String()), val.region)
	return err == nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email format"
	case "phone":
		return "Invalid phone number"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
