package form

import (
	"slices"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Field is the definition of a single form input.
type Field struct {
	Name  string
	Label string
	Rule  validator.Rule

	// DependsOn lists fields whose values the rule reads. Names in
	// Rule.Requires are added automatically.
	DependsOn []string

	// Sanitize, when set, transforms every incoming raw value before it is stored.
	Sanitize func(string) string

	// Secret fields are validated but never copied into a Record.
	Secret bool

	// Options lists the allowed values of a choice field in display order.
	Options []string
}

// DisplayLabel returns Label, falling back to Name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

func (f Field) sanitize(value string) string {
	if f.Sanitize == nil {
		return value
	}
	return f.Sanitize(value)
}

func (f Field) clone() Field {
	f.DependsOn = slices.Clone(f.DependsOn)
	f.Rule.Requires = slices.Clone(f.Rule.Requires)
	f.Options = slices.Clone(f.Options)
	return f
}

// FieldState is the live state of one field inside a Session.
type FieldState struct {
	RawValue string
	Touched  bool
	Outcome  validator.Outcome
}

// Visible reports whether the outcome message should be shown to the user.
// Untouched fields are evaluated but their errors stay hidden.
func (s FieldState) Visible() bool {
	return s.Touched && !s.Outcome.IsValid()
}

// Message returns the error message, or "" when the field is valid.
func (s FieldState) Message() string {
	return s.Outcome.Message()
}
