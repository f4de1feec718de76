package validator

import (
	"errors"
	"fmt"
	"strings"
)

// Values maps field names to their current raw values.
type Values map[string]string

// ValidationError represents a single validation error with translation support.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

// Fields returns the names of the failing fields in first-seen order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Rule is a named predicate over a raw field value and the raw values of the
// fields listed in Requires. Check must be pure: the same inputs always yield
// the same answer, and every string (including "") is a legal input.
type Rule struct {
	Name     string
	Requires []string
	Check    func(value string, deps Values) bool
	Error    ValidationError
}

// Evaluate runs the rule for the named field. A rule without a Check always passes.
func (r Rule) Evaluate(field, value string, deps Values) Outcome {
	if r.Check == nil || r.Check(value, deps) {
		return Valid()
	}

	failure := r.Error
	failure.Field = field
	if failure.TranslationValues != nil {
		values := make(map[string]any, len(failure.TranslationValues)+1)
		for k, v := range failure.TranslationValues {
			values[k] = v
		}
		values["field"] = field
		failure.TranslationValues = values
	}
	return Invalid(failure)
}

// Outcome is the result of evaluating a Rule: valid, or invalid with a message.
type Outcome struct {
	invalid bool
	failure ValidationError
}

// Valid returns a passing outcome.
func Valid() Outcome {
	return Outcome{}
}

// Invalid returns a failing outcome carrying the given error.
func Invalid(failure ValidationError) Outcome {
	return Outcome{invalid: true, failure: failure}
}

func (o Outcome) IsValid() bool {
	return !o.invalid
}

// Message returns the failure message, or "" for a valid outcome.
func (o Outcome) Message() string {
	if !o.invalid {
		return ""
	}
	return o.failure.Message
}

// Failure returns the validation error of an invalid outcome.
func (o Outcome) Failure() (ValidationError, bool) {
	return o.failure, o.invalid
}

// Equal reports whether two outcomes would render identically.
func (o Outcome) Equal(other Outcome) bool {
	if o.invalid != other.invalid {
		return false
	}
	if !o.invalid {
		return true
	}
	return o.failure.Field == other.failure.Field &&
		o.failure.Message == other.failure.Message &&
		o.failure.TranslationKey == other.failure.TranslationKey
}

func (o Outcome) String() string {
	if !o.invalid {
		return "valid"
	}
	return "invalid: " + o.failure.Message
}

// Apply evaluates every rule against the value and returns the failures as
// ValidationErrors, or nil when all rules pass.
func Apply(field, value string, deps Values, rules ...Rule) error {
	var errors ValidationErrors

	for _, rule := range rules {
		if failure, invalid := rule.Evaluate(field, value, deps).Failure(); invalid {
			errors = append(errors, failure)
		}
	}

	if errors.IsEmpty() {
		return nil
	}

	return errors
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}
