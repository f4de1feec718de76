package validator

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

var (
	uppercaseRegex   = regexp.MustCompile(`[A-Z]`)
	lowercaseRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex       = regexp.MustCompile(`[0-9]`)
	specialCharRegex = regexp.MustCompile(`[^A-Za-z0-9]`)
)

type PasswordStrengthConfig struct {
	MinLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireDigits    bool
	RequireSpecial   bool
}

// DefaultPasswordStrength returns the signup policy: 8+ chars with upper, lower, digit and special.
func DefaultPasswordStrength() PasswordStrengthConfig {
	return PasswordStrengthConfig{
		MinLength:        8,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireDigits:    true,
		RequireSpecial:   true,
	}
}

// StrongPassword validates a password against DefaultPasswordStrength.
func StrongPassword() Rule {
	return StrongPasswordWith(DefaultPasswordStrength())
}

func StrongPasswordWith(config PasswordStrengthConfig) Rule {
	return Rule{
		Name: "strong_password",
		Check: func(value string, _ Values) bool {
			if utf8.RuneCountInString(value) < config.MinLength {
				return false
			}
			if config.RequireUppercase && !uppercaseRegex.MatchString(value) {
				return false
			}
			if config.RequireLowercase && !lowercaseRegex.MatchString(value) {
				return false
			}
			if config.RequireDigits && !digitRegex.MatchString(value) {
				return false
			}
			if config.RequireSpecial && !specialCharRegex.MatchString(value) {
				return false
			}
			return true
		},
		Error: ValidationError{
			Message:        fmt.Sprintf("Password must be %d+ chars with upper, lower, number, special", config.MinLength),
			TranslationKey: "validation.password_strength",
			TranslationValues: map[string]any{
				"min_length":        config.MinLength,
				"require_uppercase": config.RequireUppercase,
				"require_lowercase": config.RequireLowercase,
				"require_digits":    config.RequireDigits,
				"require_special":   config.RequireSpecial,
			},
		},
	}
}

// MatchesField validates that a value is non-empty and equal to the current
// value of another field. The other field is listed in Requires so the owner
// is re-evaluated whenever it changes.
func MatchesField(other string) Rule {
	return Rule{
		Name:     "matches_field",
		Requires: []string{other},
		Check: func(value string, deps Values) bool {
			return value != "" && value == deps[other]
		},
		Error: ValidationError{
			Message:        "Passwords do not match",
			TranslationKey: "validation.matches_field",
			TranslationValues: map[string]any{
				"other": other,
			},
		},
	}
}
