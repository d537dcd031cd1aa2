// Package template implements the brace-placeholder announcement templates
// the panel lets users edit, e.g. "Product: {product_name}, Brand: {brand}".
// A placeholder is {name} where name is ASCII letters, digits, or underscore;
// any other brace usage is treated as literal text
package template

import (
	"strings"

	perr "shopsense/internal/platform/errors"
)

// Placeholders returns the placeholder names referenced by tmpl, in order of
// first appearance, without duplicates
func Placeholders(tmpl string) []string {
	var names []string
	seen := map[string]bool{}
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '{' {
			continue
		}
		name, end, ok := scanName(tmpl, i+1)
		if !ok {
			continue
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		i = end
	}
	return names
}

// Validate checks that tmpl references only the allowed placeholder names
func Validate(tmpl string, allowed ...string) error {
	ok := map[string]bool{}
	for _, a := range allowed {
		ok[a] = true
	}
	var bad []string
	for _, name := range Placeholders(tmpl) {
		if !ok[name] {
			bad = append(bad, name)
		}
	}
	if len(bad) > 0 {
		return perr.Validationf(
			"unknown placeholder(s) %s; allowed: %s",
			"{"+strings.Join(bad, "}, {")+"}",
			"{"+strings.Join(allowed, "}, {")+"}",
		)
	}
	return nil
}

// Render substitutes vars into tmpl. Placeholders without a binding are left
// verbatim; Validate at configuration time ensures that cannot happen for
// accepted templates
func Render(tmpl string, vars map[string]string) string {
	var b strings.Builder
	b.Grow(len(tmpl))
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '{' {
			b.WriteByte(tmpl[i])
			continue
		}
		name, end, ok := scanName(tmpl, i+1)
		if !ok {
			b.WriteByte(tmpl[i])
			continue
		}
		if v, bound := vars[name]; bound {
			b.WriteString(v)
		} else {
			b.WriteString(tmpl[i : end+1])
		}
		i = end
	}
	return b.String()
}

// scanName reads a placeholder name starting at tmpl[start] and returns the
// name and the index of the closing brace. ok is false when there is no
// well-formed placeholder at this position
func scanName(tmpl string, start int) (name string, end int, ok bool) {
	i := start
	for i < len(tmpl) && isNameByte(tmpl[i]) {
		i++
	}
	if i == start || i >= len(tmpl) || tmpl[i] != '}' {
		return "", 0, false
	}
	return tmpl[start:i], i, true
}

func isNameByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
