package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL-safe identifier from a display name: diacritics are
// stripped, letters lowercased, and runs of anything non-alphanumeric become
// a single hyphen. The result is deterministic, so deriving twice from the
// same name yields the same slug.
func Slugify(name string) string {
	ascii, _, err := transform.String(deaccent, name)
	if err != nil {
		ascii = name
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(ascii) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			if b.Len() > 0 {
				pendingHyphen = true
			}
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
