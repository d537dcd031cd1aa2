// Package domain defines the types and interfaces for the products service
package domain

// Record is a known product keyed by its barcode payload
type Record struct {
	Barcode     string `json:"barcode"`
	ProductName string `json:"product_name"`
	Brand       string `json:"brand"`
	Allergies   string `json:"allergies"`
	Notes       string `json:"notes"`
}

// CreateInput is the payload for registering a new product
type CreateInput struct {
	Barcode     string `json:"barcode" validate:"required"`
	ProductName string `json:"product_name" validate:"required"`
	Brand       string `json:"brand" validate:"required"`
	Allergies   string `json:"allergies"`
	Notes       string `json:"notes"`
}

// UpdateInput replaces the mutable fields of an existing product
// The barcode itself is the identity and never changes
type UpdateInput struct {
	ProductName string `json:"product_name" validate:"required"`
	Brand       string `json:"brand" validate:"required"`
	Allergies   string `json:"allergies"`
	Notes       string `json:"notes"`
}
