package form

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

var (
	// ErrUnknownField is returned when an adapter addresses a field the form does not define.
	ErrUnknownField = errors.New("form: unknown field")

	// ErrConfiguration is wrapped by every ConfigurationError.
	ErrConfiguration = errors.New("form: invalid configuration")

	// ErrSubmissionRejected is returned by TrySubmit while any field is invalid.
	ErrSubmissionRejected = errors.New("form: submission rejected")
)

// ConfigurationError describes a form definition that cannot be built into a Schema.
type ConfigurationError struct {
	Form   string
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("form %q: %s", e.Form, e.Reason)
	}
	return fmt.Sprintf("form %q: field %q: %s", e.Form, e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func configErr(form, field, format string, args ...any) error {
	return &ConfigurationError{Form: form, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// InvalidFields returns the names of the fields that caused a rejected
// submission, in definition order. It returns nil for any other error.
func InvalidFields(err error) []string {
	if !errors.Is(err, ErrSubmissionRejected) {
		return nil
	}
	return validator.ExtractValidationErrors(err).Fields()
}
