// Package naming derives Flywheel group ids, project labels and slugs from
// the human readable names found in project files. Keeping the rules here
// lets the use cases and backends agree on the same identifiers.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// LabelMaxLength is the longest label Flywheel accepts for groups and projects.
const LabelMaxLength = 64

// Slugify lowercases s, folds accents to ASCII and joins the remaining
// alphanumeric runs with single hyphens ("Alpha ADRC" -> "alpha-adrc").
func Slugify(s string) string {
	s = foldASCII(s)
	s = strings.NewReplacer("'", "", "\"", "").Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if isASCIIAlnum(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// SanitizeLabel truncates a label to LabelMaxLength characters.
func SanitizeLabel(label string) string {
	r := []rune(label)
	if len(r) <= LabelMaxLength {
		return label
	}
	return string(r[:LabelMaxLength])
}

// SanitizeGroupID converts a name into a group id: lowercase letters,
// digits, dashes and underscores, with spaces turned into underscores.
func SanitizeGroupID(name string) string {
	lowered := strings.ReplaceAll(strings.ToLower(foldASCII(name)), " ", "_")
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if isASCIIAlnum(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func foldASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
