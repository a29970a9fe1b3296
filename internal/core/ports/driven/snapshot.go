package driven

import (
	"context"
	"time"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
)

// IndexSnapshot is the persisted form of a built semantic index. Documents
// and vectors are positionally aligned; loading a snapshot must be
// retrieval-equivalent to rebuilding from source.
type IndexSnapshot struct {
	// ModelName is the embedding model the vectors were produced with.
	ModelName string

	// Dimensions is the vector dimensionality.
	Dimensions int

	// BuiltAt is when the index was built.
	BuiltAt time.Time

	// Documents holds every indexed document in insertion order.
	Documents []domain.Document

	// Vectors holds one embedding per document, same order.
	Vectors [][]float32
}

// SnapshotStore persists index snapshots so startup can skip re-embedding.
type SnapshotStore interface {
	// Save replaces any existing snapshot with the given one.
	Save(ctx context.Context, snap *IndexSnapshot) error

	// Load returns the stored snapshot, or domain.ErrNotFound when none
	// has been saved.
	Load(ctx context.Context) (*IndexSnapshot, error)

	// Close releases resources.
	Close() error
}
