// Package validation wires go-playground/validator with the field rules shared
// by customer and address payloads.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern   = regexp.MustCompile(`^\d{10}$`)
	pincodePattern = regexp.MustCompile(`^\d{5,7}$`)
)

// Failure is a single rejected field, reported by its JSON name.
type Failure struct {
	Field string
	Tag   string
}

func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	mustRegister(v, "notblank", notBlank)
	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	// An empty pincode means "not supplied"; only non-empty values are checked.
	mustRegister(v, "pincode", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || pincodePattern.MatchString(s)
	})
	return v
}

// Failures flattens validator output into field failures. Errors that are not
// validation failures (bad input type, nil struct) are returned unchanged.
func Failures(err error) ([]Failure, error) {
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	out := make([]Failure, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, Failure{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out, nil
}

// TrimOptional trims a supplied value in place, keeping nil as "absent".
func TrimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: registering " + tag + ": " + err.Error())
	}
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}
