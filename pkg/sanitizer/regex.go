package sanitizer

import "regexp"

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// Boundary before an upper-case letter in a camelCase key.
	camelBoundaryRegex = regexp.MustCompile(`([^A-Z\s])([A-Z])`)

	keySeparatorRegex = regexp.MustCompile(`[_\-.]+`)
)
