package validator

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Something@something.something with no whitespace or extra @ signs.
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Local mobile number: 03 followed by nine digits.
	phoneLocalRegex = regexp.MustCompile(`^03\d{9}$`)
)

const (
	// PhoneLocalDigits is the fixed length of a local phone number.
	PhoneLocalDigits = 11
	// NationalIDDigits is the fixed length of a national identity number.
	NationalIDDigits = 13
)

// Email validates an address shaped like local@domain.tld.
// Surrounding whitespace is ignored.
func Email() Rule {
	return Rule{
		Name: "email",
		Check: func(value string, _ Values) bool {
			return emailRegex.MatchString(strings.TrimSpace(value))
		},
		Error: ValidationError{
			Message:           "Enter a valid email address",
			TranslationKey:    "validation.email",
			TranslationValues: map[string]any{},
		},
	}
}

// PhoneLocal validates an 11 digit local phone number starting with 03.
func PhoneLocal() Rule {
	return Rule{
		Name: "phone_local",
		Check: func(value string, _ Values) bool {
			return phoneLocalRegex.MatchString(value)
		},
		Error: ValidationError{
			Message:        "Phone must start with 03 and be 11 digits",
			TranslationKey: "validation.phone_local",
			TranslationValues: map[string]any{
				"prefix": "03",
				"digits": PhoneLocalDigits,
			},
		},
	}
}

// NationalID validates a national identity number of exactly 13 digits.
func NationalID() Rule {
	rule := Digits(NationalIDDigits)
	rule.Name = "national_id"
	rule.Error.TranslationKey = "validation.national_id"
	return rule
}

// Digits validates a string made of exactly n ASCII digits.
func Digits(n int) Rule {
	return Rule{
		Name: "digits",
		Check: func(value string, _ Values) bool {
			if len(value) != n {
				return false
			}
			for i := 0; i < len(value); i++ {
				if value[i] < '0' || value[i] > '9' {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Message:        fmt.Sprintf("Must be exactly %d digits", n),
			TranslationKey: "validation.digits",
			TranslationValues: map[string]any{
				"digits": n,
			},
		},
	}
}
