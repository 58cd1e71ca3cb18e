package dto

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

// ValidationDetails flattens ozzo field errors into a response map.
func ValidationDetails(err error) map[string]any {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return nil
	}
	details := make(map[string]any, len(fieldErrs))
	for field, fieldErr := range fieldErrs {
		if fieldErr != nil {
			details[field] = fieldErr.Error()
		}
	}
	return details
}
