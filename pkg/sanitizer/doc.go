// Package sanitizer provides small string transforms applied to raw form
// input before it is validated, plus helpers for presenting stored keys.
//
// Every helper is a func(string) string (or returns one), so they compose into
// pipelines with Apply and Compose:
//
//	phone := sanitizer.Compose(sanitizer.Trim, sanitizer.DigitsMax(11))
//	phone("03-001-2345678extra") // "03001234567"
//
// HumanizeKey converts camelCase or snake_case record keys into labels for
// summary output:
//
//	sanitizer.HumanizeKey("confirmPassword") // "Confirm Password"
//
// The package is stateless and safe for concurrent use.
package sanitizer
