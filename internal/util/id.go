package util

import (
	"strings"
	"unicode"

	nanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewPlanID returns a short random plan identifier, lowercase so it can be
// embedded in branch names and directory names as-is.
func NewPlanID() (string, error) {
	return nanoid.Generate(idAlphabet, 8)
}

// Kebab converts a string to kebab-case: lowercased, spaces and underscores
// become hyphens, other punctuation is dropped, and runs of hyphens
// collapse.
func Kebab(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case r == ' ' || r == '_' || r == '-':
			b.WriteRune('-')
		}
	}

	out := b.String()
	for strings.Contains(out, "--") {
		out = strings.ReplaceAll(out, "--", "-")
	}
	return strings.Trim(out, "-")
}
