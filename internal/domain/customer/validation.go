package customer

import (
	"customer-registry/internal/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type Mode int

const (
	// ModeCreate requires first_name, last_name and phone.
	ModeCreate Mode = iota
	// ModePartial checks only the fields present in the payload.
	ModePartial
)

var validate = validation.New()

// Validate returns the JSON names of every invalid field in the input. An
// empty result means the input is acceptable for the given mode.
func Validate(in Input, mode Mode) []string {
	return validateWith(validate, in, mode)
}

func validateWith(v *validator.Validate, in Input, mode Mode) []string {
	failures, err := validation.Failures(v.Struct(in))
	if err != nil {
		return []string{"customer"}
	}
	var fields []string
	for _, f := range failures {
		if mode == ModePartial && f.Tag == "required" {
			continue
		}
		fields = append(fields, f.Field)
	}
	return fields
}
