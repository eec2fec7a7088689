package form

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/students-form/internal/types"
	apperrors "github.com/aanand-mishra/students-form/pkg/errors"
)

const (
	msgRequired  = "All fields are required."
	msgAgeNumber = "Age must be a number."
)

var validate = validator.New()

// Validate checks the form text the same way for Add and Update: every
// field non-empty, then age an integer that fits the INT column. It
// returns the parsed values or an apperrors.ValidationError.
func Validate(f types.Fields) (name string, age int, course string, err error) {
	if err := validate.Struct(f); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return "", 0, "", apperrors.ValidationError{
				Field:   fieldErrs[0].Field(),
				Value:   fieldErrs[0].Value(),
				Message: msgRequired,
			}
		}
		return "", 0, "", err
	}

	n, err := strconv.ParseInt(f.Age, 10, 32)
	if err != nil {
		return "", 0, "", apperrors.ValidationError{
			Field:   "Age",
			Value:   f.Age,
			Message: msgAgeNumber,
		}
	}

	return f.Name, int(n), f.Course, nil
}
