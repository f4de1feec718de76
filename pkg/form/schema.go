package form

import (
	"slices"
	"strings"
)

// Mode selects how accepted records are persisted.
type Mode string

const (
	// ModeOverwrite keeps a single record under the storage key.
	ModeOverwrite Mode = "overwrite"
	// ModeAppend keeps a JSON array of records under the storage key.
	ModeAppend Mode = "append"
)

// Valid reports whether m is a known persistence mode.
func (m Mode) Valid() bool {
	return m == ModeOverwrite || m == ModeAppend
}

// Schema is an immutable, validated form definition. A single Schema can back
// any number of concurrent sessions.
type Schema struct {
	name       string
	storageKey string
	mode       Mode
	fields     []Field
	index      map[string]int
	deps       [][]int
	downstream [][]int
}

// Option configures a Schema.
type Option func(*Schema)

// WithStorageKey sets the key records are persisted under. Defaults to the form name.
func WithStorageKey(key string) Option {
	return func(s *Schema) {
		s.storageKey = key
	}
}

// WithMode sets the persistence mode. Defaults to ModeOverwrite.
func WithMode(mode Mode) Option {
	return func(s *Schema) {
		s.mode = mode
	}
}

// NewSchema validates the field definitions and builds a Schema.
// Every problem is reported as a *ConfigurationError wrapping ErrConfiguration.
func NewSchema(name string, fields []Field, opts ...Option) (*Schema, error) {
	s := &Schema{
		name:  strings.TrimSpace(name),
		mode:  ModeOverwrite,
		index: make(map[string]int, len(fields)),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.name == "" {
		return nil, configErr(name, "", "form name is required")
	}
	if s.storageKey == "" {
		s.storageKey = s.name
	}
	if !s.mode.Valid() {
		return nil, configErr(s.name, "", "unknown persistence mode %q", s.mode)
	}
	if len(fields) == 0 {
		return nil, configErr(s.name, "", "form has no fields")
	}

	s.fields = make([]Field, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, configErr(s.name, "", "field #%d has an empty name", i+1)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, configErr(s.name, f.Name, "duplicate field name")
		}
		if f.Rule.Check == nil {
			return nil, configErr(s.name, f.Name, "missing rule")
		}
		s.index[f.Name] = i
		s.fields[i] = f.clone()
	}

	s.deps = make([][]int, len(s.fields))
	for i := range s.fields {
		f := &s.fields[i]
		var names []string
		for _, dep := range slices.Concat(f.DependsOn, f.Rule.Requires) {
			if !slices.Contains(names, dep) {
				names = append(names, dep)
			}
		}
		for _, dep := range names {
			idx, ok := s.index[dep]
			if !ok {
				return nil, configErr(s.name, f.Name, "unknown dependency %q", dep)
			}
			s.deps[i] = append(s.deps[i], idx)
		}
		f.DependsOn = names
	}

	graph := newDependencyGraph(s.deps)
	topo, at, ok := graph.order()
	if !ok {
		return nil, configErr(s.name, s.fields[at].Name, "dependency cycle")
	}

	s.downstream = make([][]int, len(s.fields))
	for i := range s.fields {
		s.downstream[i] = graph.downstream(i, topo)
	}

	return s, nil
}

// MustSchema is like NewSchema but panics on error. Intended for package-level presets.
func MustSchema(name string, fields []Field, opts ...Option) *Schema {
	s, err := NewSchema(name, fields, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Name() string       { return s.name }
func (s *Schema) StorageKey() string { return s.storageKey }
func (s *Schema) Mode() Mode         { return s.mode }

// Fields returns copies of the field definitions in definition order.
// DependsOn includes the dependencies implied by each rule.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.clone()
	}
	return out
}

// Field returns the definition of the named field.
func (s *Schema) Field(name string) (Field, bool) {
	idx, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[idx].clone(), true
}

// Dependents returns the names of every field that transitively depends on name,
// in the order they are recomputed.
func (s *Schema) Dependents(name string) ([]string, error) {
	idx, ok := s.index[name]
	if !ok {
		return nil, ErrUnknownField
	}
	out := make([]string, 0, len(s.downstream[idx]))
	for _, d := range s.downstream[idx] {
		out = append(out, s.fields[d].Name)
	}
	return out, nil
}

// NewSession starts a fresh session with every field empty and evaluated.
func (s *Schema) NewSession() *Session {
	sess := &Session{
		schema: s,
		states: make([]FieldState, len(s.fields)),
	}
	for i := range s.fields {
		sess.states[i].Outcome = sess.evaluate(i)
	}
	return sess
}
