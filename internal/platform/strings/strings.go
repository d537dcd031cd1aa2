// Package strings provides small string and slice helpers
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// EmptyToNil returns empty string if s is all whitespace, otherwise returns s
func EmptyToNil(s string) string {
	if std.TrimSpace(s) == "" {
		return ""
	}
	return s
}

// Deref returns "" if ps is nil, else *ps.
func Deref(ps *string) string {
	if ps == nil {
		return ""
	}
	return *ps
}

// Ptr returns a pointer to s, or nil if s is empty
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
