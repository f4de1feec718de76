// Package forms ships the built-in form definitions.
package forms

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"path"
	"slices"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// ErrUnknownForm is returned by Lookup for names that are not embedded.
var ErrUnknownForm = errors.New("forms: unknown form")

//go:embed definitions/*.yaml
var definitionsFS embed.FS

var loadDefinitions = sync.OnceValues(func() (map[string]form.Definition, error) {
	entries, err := definitionsFS.ReadDir("definitions")
	if err != nil {
		return nil, err
	}

	defs := make(map[string]form.Definition, len(entries))
	for _, entry := range entries {
		data, err := definitionsFS.ReadFile(path.Join("definitions", entry.Name()))
		if err != nil {
			return nil, err
		}
		def, err := form.ParseDefinition(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		defs[def.Name] = def
	}
	return defs, nil
})

// Names returns the names of the embedded forms, sorted.
func Names() []string {
	defs, err := loadDefinitions()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Definition returns the parsed YAML definition of an embedded form.
func Definition(name string) (form.Definition, error) {
	defs, err := loadDefinitions()
	if err != nil {
		return form.Definition{}, err
	}
	def, ok := defs[name]
	if !ok {
		return form.Definition{}, fmt.Errorf("%w: %q", ErrUnknownForm, name)
	}
	return def, nil
}

// Lookup builds the Schema of an embedded form.
func Lookup(name string, opts ...form.LoadOption) (*form.Schema, error) {
	def, err := Definition(name)
	if err != nil {
		return nil, err
	}
	return def.Schema(opts...)
}

// Registry builds every embedded form. Adapters use it to resolve form names.
func Registry(opts ...form.LoadOption) (map[string]*form.Schema, error) {
	out := make(map[string]*form.Schema)
	for _, name := range Names() {
		s, err := Lookup(name, opts...)
		if err != nil {
			return nil, err
		}
		out[name] = s
	}
	return out, nil
}
