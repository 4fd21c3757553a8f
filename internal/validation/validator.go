// package validation checks request DTOs with go-playground/validator and a few
// project specific tags.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gumwoo/umc-pr/internal/apperrors"
)

// DateLayout is the wire format of calendar dates such as a user's birth date.
const DateLayout = "2006-01-02"

var (
	validate = validator.New()
	phoneRe  = regexp.MustCompile(`^\+?[0-9][0-9-]{6,18}$`)
)

func init() {
	// Report json field names so messages match what the client sent.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}

		return name
	})

	custom := map[string]validator.Func{
		// Empty values are left to "required".
		"phone": func(fl validator.FieldLevel) bool {
			v := fl.Field().String()
			return v == "" || phoneRe.MatchString(v)
		},
		"date": func(fl validator.FieldLevel) bool {
			v := fl.Field().String()
			if v == "" {
				return true
			}

			_, err := time.Parse(DateLayout, v)

			return err == nil
		},
		"notblank": func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
	}

	for tag, fn := range custom {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("failed to register custom validation %q: %v", tag, err))
		}
	}
}

type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return strings.Join(v.Errors, ", ")
}

// AsKind converts the error into a domain error of kind with the messages in data.fields.
func (v *ValidationError) AsKind(kind apperrors.Kind) *apperrors.Error {
	return apperrors.Wrap(kind, v, "", map[string]any{"fields": v.Errors})
}

// ValidateStruct returns a *ValidationError listing every failed field.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Errors: []string{err.Error()}}
	}

	messages := make([]string, 0, len(fieldErrs))

	for _, fe := range fieldErrs {
		messages = append(messages, message(fe))
	}

	return &ValidationError{Errors: messages}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("field '%s' is required", fe.Field())
	case "gte", "min":
		return fmt.Sprintf("field '%s' must be at least %s", fe.Field(), fe.Param())
	case "lte", "max":
		return fmt.Sprintf("field '%s' must be at most %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("field '%s' must be a valid email address", fe.Field())
	case "phone":
		return fmt.Sprintf("field '%s' must be a phone number", fe.Field())
	case "date":
		return fmt.Sprintf("field '%s' must be a date in YYYY-MM-DD format", fe.Field())
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
	}
}
