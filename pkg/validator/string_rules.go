package validator

import (
	"fmt"
	"regexp"
	"strings"
)

// Letters and spaces only, at least three characters.
var alphaNameRegex = regexp.MustCompile(`^[A-Za-z ]{3,}$`)

// NonEmpty validates that a string is not empty after trimming whitespace.
func NonEmpty(label string) Rule {
	return Rule{
		Name: "non_empty",
		Check: func(value string, _ Values) bool {
			return strings.TrimSpace(value) != ""
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

// AlphaName validates a personal name made of latin letters and spaces.
// Surrounding whitespace is ignored.
func AlphaName() Rule {
	return Rule{
		Name: "alpha_name",
		Check: func(value string, _ Values) bool {
			return alphaNameRegex.MatchString(strings.TrimSpace(value))
		},
		Error: ValidationError{
			Message:        "Enter at least 3 alphabets",
			TranslationKey: "validation.alpha_name",
			TranslationValues: map[string]any{
				"min": 3,
			},
		},
	}
}
