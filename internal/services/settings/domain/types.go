// Package domain defines the types and interfaces for the settings service
package domain

// Snapshot is the immutable, fully-consistent view of the live-tunable
// configuration. Every pipeline loop re-reads it at the top of each
// iteration; an operation that already captured a snapshot finishes with it
type Snapshot struct {
	Debug                   bool   `json:"debug"`
	TTSSpeedWpm             int    `json:"tts_speed_wpm"`
	Threshold               int    `json:"threshold"`
	OCRTemplate             string `json:"ocr_template"`
	BarcodeFoundTemplate    string `json:"barcode_found_template"`
	BarcodeNotFoundTemplate string `json:"barcode_not_found_template"`
}

// Field ranges and template placeholders, shared by validation and docs
const (
	MinTTSSpeedWpm = 100
	MaxTTSSpeedWpm = 500
	MinThreshold   = 0
	MaxThreshold   = 255
)

// Defaults returns the snapshot used on first boot, before any tuning has
// been persisted
func Defaults() Snapshot {
	return Snapshot{
		Debug:                   false,
		TTSSpeedWpm:             200,
		Threshold:               70,
		OCRTemplate:             "{text}",
		BarcodeFoundTemplate:    "Product: {product_name}, Brand: {brand}, Allergies: {allergies}",
		BarcodeNotFoundTemplate: "Unknown barcode {barcode}",
	}
}
