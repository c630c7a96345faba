package model

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// seriesPattern allows two uppercase Latin or Cyrillic letters.
var seriesPattern = regexp.MustCompile(`^[A-ZА-ЯЁ]{2}$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		v.RegisterValidation("series", func(fl validator.FieldLevel) bool {
			return seriesPattern.MatchString(fl.Field().String())
		})
		v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
			return Status(fl.Field().Int()).Valid()
		})
		validate = v
	})
	return validate
}

// ValidSeries reports whether s is a well-formed series code.
func ValidSeries(s string) bool {
	return seriesPattern.MatchString(s)
}

// ValidateBlank checks the series, number and status of b.
func ValidateBlank(b Blank) error {
	return validateStruct(b)
}

// ValidateRange checks the series and both bounds of r.
func ValidateRange(r BlankRange) error {
	return validateStruct(r)
}

// ValidateUpdate checks the supplied fields of u.
func ValidateUpdate(u BlankUpdate) error {
	if u.Status.Set && !u.Status.Null && !u.Status.Value.Valid() {
		return &ValidationError{Field: "status", Reason: "unknown status"}
	}
	if u.Date.Set && !u.Date.Null && u.Date.Value.IsZero() {
		return &ValidationError{Field: "date", Reason: "must not be the zero date"}
	}
	return nil
}

func validateStruct(s any) error {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	return &ValidationError{Field: fe.Field(), Reason: reasonFor(fe)}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "series":
		return "must be two uppercase letters"
	case "status":
		return "unknown status"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
