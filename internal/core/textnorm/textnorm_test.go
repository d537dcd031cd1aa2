package textnorm

import "testing"

func TestCanonical(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"   ", ""},
		{"MILK", "milk"},
		{"  Whole   Milk \t 2% ", "whole milk 2%"},
		{"GLUTEN\nFREE", "gluten free"},
		{"Straße", "strasse"}, // Unicode fold, not plain lowercase
	}
	for _, tc := range cases {
		if got := Canonical(tc.in); got != tc.want {
			t.Fatalf("Canonical(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal("WHOLE  MILK", "whole milk") {
		t.Fatalf("expected case/whitespace-insensitive equality")
	}
	if Equal("whole milk", "skim milk") {
		t.Fatalf("different texts compared equal")
	}
}
