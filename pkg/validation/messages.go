package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MessagesFor converts a binding error into per-field user-facing messages.
// Non-validator errors (malformed JSON and the like) collapse to a single
// generic entry.
func MessagesFor(err error) map[string]string {
	messages := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		messages["body"] = "invalid request body"
		return messages
	}

	for _, fe := range verrs {
		field := toSnakeCase(fe.Field())
		messages[field] = messageFor(field, fe)
	}

	return messages
}

func messageFor(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
