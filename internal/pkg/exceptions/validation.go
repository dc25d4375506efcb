package exceptions

import (
	"errors"
	"strings"

	"lesson-display-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

func formatFieldError(fe validator.FieldError) string {
	fieldName := strings.ToLower(fe.Field())
	tag := fe.Tag()
	message, ok := constvars.CustomValidationErrorMessages[tag]
	if !ok {
		return fieldName + " is invalid"
	}
	if strings.Contains(message, "%s") {
		param := fe.Param()
		if tag == "oneof" {
			param = strings.Join(strings.Fields(param), ", ")
		}
		message = strings.Replace(message, "%s", param, 1)
	}
	return fieldName + " " + message
}

func FormatAllValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, formatFieldError(fe))
	}
	return messages
}
