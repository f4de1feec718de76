package sanitizer

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English, cases.NoLower)

// HumanizeKey turns a record key into a display label:
// "fullName" becomes "Full Name", "storage_key" becomes "Storage Key".
func HumanizeKey(key string) string {
	s := keySeparatorRegex.ReplaceAllString(Trim(key), " ")
	s = camelBoundaryRegex.ReplaceAllString(s, "$1 $2")
	return titleCaser.String(NormalizeWhitespace(s))
}
