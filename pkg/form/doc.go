// Package form is a declarative field-validation engine.
//
// A Schema is a validated list of Field definitions: each field has a rule from
// the validator catalog, optional dependencies on other fields, an optional
// sanitizer and a secret flag. Schemas are immutable and shared; every user
// interaction runs in its own Session.
//
//	schema, err := form.NewSchema("signup", []form.Field{
//	    {Name: "password", Rule: validator.StrongPassword(), Secret: true},
//	    {Name: "confirm", Rule: validator.MatchesField("password"), Secret: true},
//	})
//	sess := schema.NewSession()
//	changed, _ := sess.SetValue("password", "Abcdef1!") // ["password", "confirm"] when outcomes flip
//
// SetValue sanitizes the value, re-evaluates the field and then every field
// that transitively depends on it, in topological order. Cycles and unknown
// dependencies are rejected by NewSchema with a *ConfigurationError.
//
// TrySubmit is the submission gate: it yields an ordered Record of all
// non-secret values, or ErrSubmissionRejected joined with the failures. Use
// InvalidFields to list the offenders.
//
// Definitions can also be written in YAML and built with Load.
package form
