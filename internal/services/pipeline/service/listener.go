package service

import (
	"context"
	"time"

	"shopsense/internal/core/template"
	perr "shopsense/internal/platform/errors"
	"shopsense/internal/platform/logger"
	dom "shopsense/internal/services/pipeline/domain"
	productsdom "shopsense/internal/services/products/domain"
	settingsdom "shopsense/internal/services/settings/domain"
)

// Listener resolves scanned barcodes against the product catalog and builds
// the announcement for each scan. Every scan always yields audio feedback:
// found, not-found, or not-found after a failed lookup, never silence
type Listener struct {
	lookup   productsdom.LookupPort
	settings settingsdom.ReaderPort
	log      logger.Logger
	now      func() time.Time
}

// NewListener constructs the barcode listener
func NewListener(lookup productsdom.LookupPort, settings settingsdom.ReaderPort, log logger.Logger) *Listener {
	return &Listener{lookup: lookup, settings: settings, log: log, now: time.Now}
}

// Resolve looks up barcode and returns the announcement to enqueue. A lookup
// failure that is not a genuine not-found is retried once immediately and
// then degrades to the not-found announcement
func (l *Listener) Resolve(ctx context.Context, barcode string) dom.Announcement {
	snap := l.settings.Get()

	rec, err := l.lookup.FindByBarcode(ctx, barcode)
	if err != nil && !perr.IsNotFound(err) {
		l.log.Warn().Err(err).Str("barcode", barcode).Msg("lookup fault, retrying")
		rec, err = l.lookup.FindByBarcode(ctx, barcode)
	}

	var utterance string
	switch {
	case err == nil:
		allergies := rec.Allergies
		if allergies == "" {
			// an allergy gap must be audible, never silently omitted
			allergies = "none"
		}
		utterance = template.Render(snap.BarcodeFoundTemplate, map[string]string{
			"product_name": rec.ProductName,
			"brand":        rec.Brand,
			"allergies":    allergies,
		})
	default:
		if !perr.IsNotFound(err) {
			l.log.Error().Err(err).Str("barcode", barcode).Msg("lookup fault persisted, announcing not found")
		}
		utterance = template.Render(snap.BarcodeNotFoundTemplate, map[string]string{
			"barcode": barcode,
		})
	}

	return dom.Announcement{
		Utterance: utterance,
		Priority:  dom.PriorityBarcode,
		CreatedAt: l.now(),
	}
}
