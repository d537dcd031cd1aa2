package domain

import "context"

// ReaderPort is the read side handed to the pipeline loops.
// Get never blocks and always returns the latest committed snapshot
type ReaderPort interface {
	Get() Snapshot
}

// AdminPort is the full surface used by the web panel
type AdminPort interface {
	ReaderPort

	// Update validates the given field->value mapping and, when every field
	// passes, atomically publishes and persists a new snapshot. On any
	// rejection the prior snapshot is retained untouched
	Update(ctx context.Context, fields map[string]any) (Snapshot, error)
}

// Repo persists accepted snapshots so tuning survives a power cycle
type Repo interface {
	// Load returns the stored snapshot; ok=false on first boot
	Load(ctx context.Context) (snap Snapshot, ok bool, err error)
	Save(ctx context.Context, snap Snapshot) error
}
