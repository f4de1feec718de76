// Package validator provides the rule catalog used to validate form fields.
//
// A Rule is a named, pure predicate over a field's raw string value and the
// raw values of the fields it depends on, paired with translation-friendly
// error metadata. Evaluating a rule yields an Outcome: valid, or invalid with
// a ValidationError whose Message is shown next to the field.
//
// # Architecture
//
// Each source file groups a family of rules (`string_rules.go`,
// `format_rules.go`, `date_rules.go`, `password_rules.go`,
// `choice_rules.go`). Every exported constructor returns a Rule value; there is
// no global state, so rules can be shared between any number of form sessions
// and goroutines.
//
// Core building blocks:
//   - Rule              name, dependencies (Requires), Check func and error meta
//   - Outcome           Valid or Invalid(ValidationError)
//   - ValidationError   describes a single failure and supports i18n keys
//   - ValidationErrors  slice type that implements the error interface
//
// # Usage
//
//	rule := validator.PhoneLocal()
//	out := rule.Evaluate("phone", "03001234567", nil)
//	if !out.IsValid() {
//	    fmt.Println(out.Message())
//	}
//
// Cross-field rules list the fields they read in Requires:
//
//	confirm := validator.MatchesField("password")
//	out := confirm.Evaluate("confirm", "Abc123!@", validator.Values{"password": "Abc123!@"})
//
// Apply aggregates failures of several rules into a ValidationErrors error:
//
//	if err := validator.Apply("email", v, nil, validator.NonEmpty("Email"), validator.Email()); err != nil {
//	    fields := validator.ExtractValidationErrors(err).Fields()
//	}
package validator
