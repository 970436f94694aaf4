package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is returned when the input contains nothing usable.
const Fallback = "untitled"

// NameMaxLength caps slugs derived from business names.
const NameMaxLength = 50

// Normalize turns an arbitrary display string into an identifier-safe slug:
// lowercase ASCII letters and digits separated by single hyphens, with
// diacritics stripped. A maxLength <= 0 leaves the result unbounded.
func Normalize(input string, maxLength int) string {
	stripped := stripMarks(input)

	var b strings.Builder
	b.Grow(len(stripped))
	pendingHyphen := false
	for _, r := range strings.ToLower(stripped) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	out := b.String()
	if maxLength > 0 && len(out) > maxLength {
		out = strings.TrimRight(out[:maxLength], "-")
	}
	if out == "" {
		return Fallback
	}
	return out
}

// ThemeSuffix is appended to every theme slug.
const ThemeSuffix = "-wp"

// Theme derives the theme slug for a business name.
func Theme(name string) string {
	return Normalize(name, NameMaxLength) + ThemeSuffix
}

// IdentifierPrefix is prepended when a slug does not start with a letter.
const IdentifierPrefix = "t_"

// Identifier converts a slug into a PHP/JS identifier prefix: every byte
// outside [A-Za-z0-9_] becomes '_' and the result never starts with a digit.
func Identifier(s string) string {
	b := []byte(s)
	for i, c := range b {
		if !(c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			b[i] = '_'
		}
	}
	if len(b) == 0 || b[0] >= '0' && b[0] <= '9' {
		return IdentifierPrefix + string(b)
	}
	return string(b)
}

// stripMarks decomposes the input and drops combining marks, so "é" becomes "e".
func stripMarks(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	return out
}
