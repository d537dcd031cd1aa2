package domain

import "context"

// LookupPort is the read side handed to the barcode pipeline loop
type LookupPort interface {
	// FindByBarcode returns the record for the exact barcode payload,
	// or a not found error when the catalog has no entry for it
	FindByBarcode(ctx context.Context, barcode string) (Record, error)
}

// AdminPort is the full catalog surface used by the web panel
type AdminPort interface {
	LookupPort

	List(ctx context.Context) ([]Record, error)
	Create(ctx context.Context, in CreateInput) (Record, error)
	Update(ctx context.Context, barcode string, in UpdateInput) (Record, error)
	Delete(ctx context.Context, barcode string) error
}

// Repo is the persistence surface behind the service
type Repo interface {
	FindByBarcode(ctx context.Context, barcode string) (Record, error)
	List(ctx context.Context) ([]Record, error)
	Insert(ctx context.Context, rec Record) error
	Update(ctx context.Context, rec Record) error
	Delete(ctx context.Context, barcode string) error
}
