package services

import (
	"context"
	"fmt"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
	"github.com/gridiron-labs/huddle-cli/internal/core/ports/driven"
	"github.com/gridiron-labs/huddle-cli/internal/core/ports/driving"
	"github.com/gridiron-labs/huddle-cli/internal/logger"
	"github.com/gridiron-labs/huddle-cli/internal/normalisers"
)

// Ensure Indexer implements the interface.
var _ driving.IndexService = (*Indexer)(nil)

// Indexer runs the build pipeline: load tables, normalise, merge,
// synthesise documents, embed, then swap the new index in atomically.
// Readers on the holder see either the previous index or the complete new
// one, never a partial build.
type Indexer struct {
	tables      driven.TableProvider
	normalisers map[domain.Category]driven.TableNormaliser
	embedder    driven.EmbeddingService
	store       driven.SnapshotStore // nil disables persistence
	synthesiser *Synthesiser
	holder      *IndexHolder
	workers     int
}

// NewIndexer creates an indexer. store may be nil, in which case builds
// are in-memory only and LoadSnapshot always reports not found.
func NewIndexer(
	tables driven.TableProvider,
	norms map[domain.Category]driven.TableNormaliser,
	embedder driven.EmbeddingService,
	store driven.SnapshotStore,
	holder *IndexHolder,
	workers int,
) *Indexer {
	if workers <= 0 {
		workers = DefaultBuildWorkers
	}
	return &Indexer{
		tables:      tables,
		normalisers: norms,
		embedder:    embedder,
		store:       store,
		synthesiser: NewSynthesiser(),
		holder:      holder,
		workers:     workers,
	}
}

// Build runs the full pipeline and swaps the result in. Any table that
// cannot be loaded or lacks its player column aborts the build; the
// previously active index (if any) stays in place.
func (ix *Indexer) Build(ctx context.Context) error {
	tables, err := ix.tables.Tables(ctx)
	if err != nil {
		return err
	}

	sets := make([][]domain.PlayerRecord, 0, len(domain.Categories))
	for _, category := range domain.Categories {
		table, ok := tables[category]
		if !ok {
			continue
		}
		norm, ok := ix.normalisers[category]
		if !ok {
			return fmt.Errorf("%w: no normaliser for category %s", domain.ErrDataSource, category)
		}
		records, stats, err := norm.Normalise(table)
		if err != nil {
			return err
		}
		logger.Info("%s: %d rows, %d skipped, %d duplicates, %d players",
			table.Source, stats.RowsSeen, stats.RowsSkipped, stats.Duplicates, len(records))
		sets = append(sets, records)
	}

	merged := normalisers.Merge(sets...)
	docs := ix.synthesiser.Synthesise(merged)
	logger.Info("synthesised %d documents for %d players", len(docs), len(merged))

	idx, err := BuildIndex(ctx, ix.embedder, docs, ix.workers)
	if err != nil {
		return err
	}

	if ix.store != nil {
		if err := ix.store.Save(ctx, idx.Snapshot()); err != nil {
			// The in-memory index is good; only persistence failed.
			logger.Warn("saving index snapshot: %v", err)
		}
	}

	ix.holder.Swap(idx)
	return nil
}

// Rebuild is Build under a name that reads as a refresh.
func (ix *Indexer) Rebuild(ctx context.Context) error {
	return ix.Build(ctx)
}

// Size returns the active index's document count, 0 when none is loaded.
func (ix *Indexer) Size() int {
	return ix.holder.Size()
}

// LoadSnapshot restores the index from the snapshot store and swaps it in.
// Returns domain.ErrNotFound when no snapshot exists and
// domain.ErrSnapshotIncompatible when the stored vectors do not match the
// configured embedding model; callers fall back to Build for both.
func (ix *Indexer) LoadSnapshot(ctx context.Context) error {
	if ix.store == nil {
		return fmt.Errorf("%w: no snapshot store configured", domain.ErrNotFound)
	}
	snap, err := ix.store.Load(ctx)
	if err != nil {
		return err
	}
	idx, err := FromSnapshot(snap, ix.embedder)
	if err != nil {
		return err
	}
	ix.holder.Swap(idx)
	logger.Info("restored index snapshot: %d documents, built %s", idx.Size(), snap.BuiltAt.Format("2006-01-02 15:04:05"))
	return nil
}
