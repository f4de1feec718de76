package validator

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// RequiredSelection validates that a select or radio group has a value.
func RequiredSelection(label string) Rule {
	return Rule{
		Name: "required_selection",
		Check: func(value string, _ Values) bool {
			return value != ""
		},
		Error: ValidationError{
			Message:        fmt.Sprintf("%s required", label),
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"label": label,
			},
		},
	}
}

// OneOf validates that a selection is one of the allowed options.
// An empty value reports the same message as RequiredSelection.
func OneOf(label string, options ...string) Rule {
	allowed := slices.Clone(options)
	return Rule{
		Name: "one_of",
		Check: func(value string, _ Values) bool {
			return value != "" && slices.Contains(allowed, value)
		},
		Error: ValidationError{
			Message:        fmt.Sprintf("%s required", label),
			TranslationKey: "validation.in_list",
			TranslationValues: map[string]any{
				"label":          label,
				"allowed_values": allowed,
			},
		},
	}
}

// RequiredAcceptance validates a checkbox-style boolean that must be true.
// Accepts the values strconv.ParseBool understands plus "on" and "yes".
func RequiredAcceptance() Rule {
	return Rule{
		Name: "required_acceptance",
		Check: func(value string, _ Values) bool {
			return IsTruthy(value)
		},
		Error: ValidationError{
			Message:           "Acceptance required",
			TranslationKey:    "validation.accepted",
			TranslationValues: map[string]any{},
		},
	}
}

// IsTruthy reports whether a raw boolean field value means "checked".
func IsTruthy(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "on", "yes", "y":
		return true
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
