// Package textnorm canonicalizes recognized text before comparison so the
// change filter treats "MILK 2%" and "milk  2%" as the same reading
package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Canonical collapses all whitespace runs to single spaces, trims the ends,
// and applies Unicode case folding
func Canonical(s string) string {
	return folder.String(strings.Join(strings.Fields(s), " "))
}

// Equal reports whether a and b canonicalize to the same text
func Equal(a, b string) bool { return Canonical(a) == Canonical(b) }
