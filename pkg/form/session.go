package form

import (
	"errors"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Session holds the live state of one form being filled in. It is owned by a
// single caller and is not safe for concurrent use; adapters that share a
// session across goroutines must serialize access.
type Session struct {
	schema *Schema
	states []FieldState
}

// Schema returns the definition the session was created from.
func (s *Session) Schema() *Schema {
	return s.schema
}

// SetValue sanitizes and stores a raw value, marks the field touched and
// re-evaluates the field and every field that transitively depends on it.
// It returns the names whose outcome changed, in definition order.
func (s *Session) SetValue(name, value string) ([]string, error) {
	idx, ok := s.schema.index[name]
	if !ok {
		return nil, ErrUnknownField
	}

	s.states[idx].RawValue = s.schema.fields[idx].sanitize(value)
	s.states[idx].Touched = true

	changed := make([]bool, len(s.states))
	changed[idx] = s.recompute(idx)
	for _, dep := range s.schema.downstream[idx] {
		changed[dep] = s.recompute(dep)
	}

	var names []string
	for i, c := range changed {
		if c {
			names = append(names, s.schema.fields[i].Name)
		}
	}
	return names, nil
}

// Value returns the stored (sanitized) raw value of a field.
func (s *Session) Value(name string) (string, error) {
	idx, ok := s.schema.index[name]
	if !ok {
		return "", ErrUnknownField
	}
	return s.states[idx].RawValue, nil
}

// State returns a copy of one field's state.
func (s *Session) State(name string) (FieldState, error) {
	idx, ok := s.schema.index[name]
	if !ok {
		return FieldState{}, ErrUnknownField
	}
	return s.states[idx], nil
}

// IsAllValid reports whether every field, touched or not, currently passes.
func (s *Session) IsAllValid() bool {
	for _, st := range s.states {
		if !st.Outcome.IsValid() {
			return false
		}
	}
	return true
}

// ErrorsFor returns the current message of a field, or "" when it is valid.
func (s *Session) ErrorsFor(name string) (string, error) {
	idx, ok := s.schema.index[name]
	if !ok {
		return "", ErrUnknownField
	}
	return s.states[idx].Outcome.Message(), nil
}

// Snapshot returns a copy of every field state keyed by name.
func (s *Session) Snapshot() map[string]FieldState {
	out := make(map[string]FieldState, len(s.states))
	for i, st := range s.states {
		out[s.schema.fields[i].Name] = st
	}
	return out
}

// TrySubmit returns the Record of all non-secret fields when every field is
// valid. Otherwise it returns ErrSubmissionRejected joined with the
// validator.ValidationErrors of every offending field, and changes nothing.
func (s *Session) TrySubmit() (Record, error) {
	var failures validator.ValidationErrors
	for _, st := range s.states {
		if failure, invalid := st.Outcome.Failure(); invalid {
			failures.Add(failure)
		}
	}
	if !failures.IsEmpty() {
		return Record{}, errors.Join(ErrSubmissionRejected, failures)
	}

	var rec Record
	for i, f := range s.schema.fields {
		if f.Secret {
			continue
		}
		rec.Set(f.Name, s.states[i].RawValue)
	}
	return rec, nil
}

func (s *Session) recompute(idx int) bool {
	next := s.evaluate(idx)
	prev := s.states[idx].Outcome
	s.states[idx].Outcome = next
	return !prev.Equal(next)
}

func (s *Session) evaluate(idx int) validator.Outcome {
	f := s.schema.fields[idx]
	var deps validator.Values
	if len(s.schema.deps[idx]) > 0 {
		deps = make(validator.Values, len(s.schema.deps[idx]))
		for _, d := range s.schema.deps[idx] {
			deps[s.schema.fields[d].Name] = s.states[d].RawValue
		}
	}
	return f.Rule.Evaluate(f.Name, s.states[idx].RawValue, deps)
}
