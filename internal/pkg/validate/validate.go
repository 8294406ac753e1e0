package validate

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// v is the package-level singleton validator. Any custom type registrations
// must be made during init() before the first call to MissingFields.
var v = validator.New()

// MissingFields returns the names of the struct fields that failed a
// "required" rule, in declaration order. Other failures are ignored.
func MissingFields(s any) []string {
	var fields []string
	for _, fe := range failures(s) {
		if fe.Tag() == "required" {
			fields = append(fields, fe.Field())
		}
	}
	return fields
}

func failures(s any) validator.ValidationErrors {
	var ve validator.ValidationErrors
	if err := v.Struct(s); err != nil && errors.As(err, &ve) {
		return ve
	}
	return nil
}
