package validator

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout of dates submitted by date inputs.
const DateLayout = "2006-01-02"

// Clock returns the current time. Rules that depend on "today" take a Clock so
// tests can pin it.
type Clock func() time.Time

// ParseDate parses a YYYY-MM-DD value. Surrounding whitespace is ignored.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// AgeOn returns the number of whole years between birthdate and now, comparing
// calendar year, month and day rather than elapsed days.
func AgeOn(birthdate, now time.Time) int {
	age := now.Year() - birthdate.Year()

	// Adjust if birthday hasn't occurred this year
	if now.Month() < birthdate.Month() ||
		(now.Month() == birthdate.Month() && now.Day() < birthdate.Day()) {
		age--
	}

	return age
}

// MinAge validates that a birthdate is at least minAge years before today.
func MinAge(minAge int) Rule {
	return MinAgeAt(minAge, time.Now)
}

// MinAgeAt is MinAge with an explicit clock.
func MinAgeAt(minAge int, clock Clock) Rule {
	if clock == nil {
		clock = time.Now
	}
	return Rule{
		Name: "min_age",
		Check: func(value string, _ Values) bool {
			birthdate, err := ParseDate(value)
			if err != nil {
				return false
			}
			return AgeOn(birthdate, clock()) >= minAge
		},
		Error: ValidationError{
			Message:        fmt.Sprintf("You must be %d+", minAge),
			TranslationKey: "validation.min_age",
			TranslationValues: map[string]any{
				"min_age": minAge,
			},
		},
	}
}
