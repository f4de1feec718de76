package form

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/sanitizer"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Definition is the YAML form of a Schema.
type Definition struct {
	Name       string            `yaml:"name"`
	StorageKey string            `yaml:"storage_key"`
	Mode       Mode              `yaml:"mode"`
	Fields     []FieldDefinition `yaml:"fields"`
}

// FieldDefinition describes one field by rule name instead of rule value.
type FieldDefinition struct {
	Name      string        `yaml:"name"`
	Label     string        `yaml:"label"`
	Rule      string        `yaml:"rule"`
	Args      RuleArgs      `yaml:"args"`
	DependsOn []string      `yaml:"depends_on"`
	Sanitize  SanitizerList `yaml:"sanitize"`
	Secret    bool          `yaml:"secret"`
}

// RuleArgs carries the parameters of parameterized rules.
type RuleArgs struct {
	MinAge    int      `yaml:"min_age"`
	Field     string   `yaml:"field"`
	Options   []string `yaml:"options"`
	MaxLength int      `yaml:"max_length"`
}

// SanitizerList accepts either a single sanitizer name or a list of names.
type SanitizerList []string

func (l *SanitizerList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" {
			*l = nil
			return nil
		}
		*l = SanitizerList{node.Value}
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		*l = names
		return nil
	default:
		return fmt.Errorf("line %d: sanitize must be a name or a list of names", node.Line)
	}
}

// LoadOption configures how a Definition is turned into a Schema.
type LoadOption func(*loadConfig)

type loadConfig struct {
	clock validator.Clock
}

// WithClock pins "today" for date rules such as min_age.
func WithClock(clock validator.Clock) LoadOption {
	return func(c *loadConfig) {
		c.clock = clock
	}
}

// ParseDefinition decodes a YAML form definition. Unknown keys are rejected.
func ParseDefinition(r io.Reader) (Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return Definition{}, configErr("", "", "empty definition")
		}
		return Definition{}, configErr(def.Name, "", "decode definition: %v", err)
	}
	return def, nil
}

// Load parses YAML and builds the Schema in one step.
func Load(data []byte, opts ...LoadOption) (*Schema, error) {
	def, err := ParseDefinition(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return def.Schema(opts...)
}

// Schema resolves rule and sanitizer names and builds the Schema.
func (d Definition) Schema(opts ...LoadOption) (*Schema, error) {
	cfg := loadConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	fields := make([]Field, 0, len(d.Fields))
	for _, fd := range d.Fields {
		field, err := fd.build(d.Name, cfg)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	var schemaOpts []Option
	if d.StorageKey != "" {
		schemaOpts = append(schemaOpts, WithStorageKey(d.StorageKey))
	}
	if d.Mode != "" {
		schemaOpts = append(schemaOpts, WithMode(d.Mode))
	}
	return NewSchema(d.Name, fields, schemaOpts...)
}

func (fd FieldDefinition) build(form string, cfg loadConfig) (Field, error) {
	label := fd.Label
	if label == "" {
		label = sanitizer.HumanizeKey(fd.Name)
	}

	ruleName := strings.TrimSpace(fd.Rule)
	if ruleName == "" {
		return Field{}, configErr(form, fd.Name, "missing rule")
	}
	build, ok := ruleBuilders[ruleName]
	if !ok {
		return Field{}, configErr(form, fd.Name, "unknown rule %q", ruleName)
	}
	rule, err := build(label, fd.Args, cfg)
	if err != nil {
		return Field{}, configErr(form, fd.Name, "rule %s: %v", ruleName, err)
	}

	var transforms []func(string) string
	for _, name := range fd.Sanitize {
		t, err := sanitizerFor(name, ruleName, fd.Args)
		if err != nil {
			return Field{}, configErr(form, fd.Name, "%v", err)
		}
		transforms = append(transforms, t)
	}

	field := Field{
		Name:      fd.Name,
		Label:     label,
		Rule:      rule,
		DependsOn: fd.DependsOn,
		Secret:    fd.Secret,
		Options:   fd.Args.Options,
	}
	if len(transforms) > 0 {
		field.Sanitize = sanitizer.Compose(transforms...)
	}
	return field, nil
}

type ruleBuilder func(label string, args RuleArgs, cfg loadConfig) (validator.Rule, error)

var ruleBuilders = map[string]ruleBuilder{
	"non_empty": func(label string, _ RuleArgs, _ loadConfig) (validator.Rule, error) {
		return validator.NonEmpty(label), nil
	},
	"alpha_name": func(string, RuleArgs, loadConfig) (validator.Rule, error) {
		return validator.AlphaName(), nil
	},
	"email": func(string, RuleArgs, loadConfig) (validator.Rule, error) {
		return validator.Email(), nil
	},
	"phone_local": func(string, RuleArgs, loadConfig) (validator.Rule, error) {
		return validator.PhoneLocal(), nil
	},
	"national_id": func(string, RuleArgs, loadConfig) (validator.Rule, error) {
		return validator.NationalID(), nil
	},
	"min_age": func(_ string, args RuleArgs, cfg loadConfig) (validator.Rule, error) {
		if args.MinAge <= 0 {
			return validator.Rule{}, errors.New("args.min_age must be positive")
		}
		return validator.MinAgeAt(args.MinAge, cfg.clock), nil
	},
	"strong_password": func(string, RuleArgs, loadConfig) (validator.Rule, error) {
		return validator.StrongPassword(), nil
	},
	"matches_field": func(_ string, args RuleArgs, _ loadConfig) (validator.Rule, error) {
		if args.Field == "" {
			return validator.Rule{}, errors.New("args.field is required")
		}
		return validator.MatchesField(args.Field), nil
	},
	"required_selection": func(label string, _ RuleArgs, _ loadConfig) (validator.Rule, error) {
		return validator.RequiredSelection(label), nil
	},
	"required_acceptance": func(string, RuleArgs, loadConfig) (validator.Rule, error) {
		return validator.RequiredAcceptance(), nil
	},
	"one_of": func(label string, args RuleArgs, _ loadConfig) (validator.Rule, error) {
		if len(args.Options) == 0 {
			return validator.Rule{}, errors.New("args.options must not be empty")
		}
		return validator.OneOf(label, args.Options...), nil
	},
}

// RuleNames lists the rule names accepted in definitions.
func RuleNames() []string {
	return []string{
		"non_empty", "alpha_name", "email", "phone_local", "national_id", "min_age",
		"strong_password", "matches_field", "required_selection", "required_acceptance", "one_of",
	}
}

func sanitizerFor(name, rule string, args RuleArgs) (func(string) string, error) {
	switch name {
	case "trim":
		return sanitizer.Trim, nil
	case "normalize_whitespace":
		return sanitizer.NormalizeWhitespace, nil
	case "digits":
		limit := args.MaxLength
		if limit == 0 {
			switch rule {
			case "phone_local":
				limit = validator.PhoneLocalDigits
			case "national_id":
				limit = validator.NationalIDDigits
			}
		}
		if limit > 0 {
			return sanitizer.DigitsMax(limit), nil
		}
		return sanitizer.KeepDigits, nil
	default:
		return nil, fmt.Errorf("unknown sanitizer %q", name)
	}
}
