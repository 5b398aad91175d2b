package validation

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// filenameDisallowed matches every character that may not appear in a stored filename
var filenameDisallowed = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// pathSeparators turns separators into word breaks so "a/b" becomes "a_b", not "ab"
var pathSeparators = strings.NewReplacer("/", " ", `\`, " ")

// SafeFilename reduces a client-supplied filename to a flat name that cannot
// leave the storage root:
//
//  1. Unicode NFKD, then everything outside ASCII is dropped ("ü" -> "u")
//  2. path separators become spaces
//  3. runs of whitespace are joined with "_"
//  4. characters outside [A-Za-z0-9_.-] are removed
//  5. leading and trailing "." and "_" are trimmed
//
// The result may be empty, e.g. for "..", which callers must reject.
//
//	SafeFilename("My cool movie.mov")   // "My_cool_movie.mov"
//	SafeFilename("../../../etc/passwd") // "etc_passwd"
func SafeFilename(name string) string {
	toASCII := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	ascii, _, err := transform.String(toASCII, name)
	if err != nil {
		return ""
	}

	ascii = pathSeparators.Replace(ascii)
	joined := strings.Join(strings.Fields(ascii), "_")
	cleaned := filenameDisallowed.ReplaceAllString(joined, "")

	return strings.Trim(cleaned, "._")
}

// IsSafeFilename reports whether name is already in sanitized form.
// Names arriving in download and delete URLs must pass this check before
// they are handed to storage.
func IsSafeFilename(name string) bool {
	return name != "" && SafeFilename(name) == name
}
