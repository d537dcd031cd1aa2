package template

import (
	"reflect"
	"testing"

	perr "shopsense/internal/platform/errors"
)

func TestPlaceholders(t *testing.T) {
	got := Placeholders("Product: {product_name}, Brand: {brand}, Allergies: {allergies}")
	want := []string{"product_name", "brand", "allergies"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Placeholders = %v, want %v", got, want)
	}
}

func TestPlaceholdersDedupesAndSkipsMalformed(t *testing.T) {
	got := Placeholders("{text} and {text} and {not closed and {} and { spaced }")
	want := []string{"text"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Placeholders = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate("{text}", "text"); err != nil {
		t.Fatalf("valid template rejected: %v", err)
	}
	if err := Validate("plain words only", "text"); err != nil {
		t.Fatalf("placeholder-free template rejected: %v", err)
	}
	err := Validate("scanned {product_name}", "barcode")
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRender(t *testing.T) {
	out := Render(
		"Product: {product_name}, Brand: {brand}, Allergies: {allergies}",
		map[string]string{"product_name": "Oat Milk", "brand": "Acme", "allergies": "none"},
	)
	if out != "Product: Oat Milk, Brand: Acme, Allergies: none" {
		t.Fatalf("Render = %q", out)
	}
}

func TestRenderLeavesUnboundAndLiteralBraces(t *testing.T) {
	out := Render("{text} {missing} {not closed", map[string]string{"text": "hi"})
	if out != "hi {missing} {not closed" {
		t.Fatalf("Render = %q", out)
	}
}
