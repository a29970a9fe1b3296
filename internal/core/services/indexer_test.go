package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
	"github.com/gridiron-labs/huddle-cli/internal/core/ports/driven"
)

type mockTableProvider struct {
	tables map[domain.Category]domain.RawTable
	err    error
}

func (m *mockTableProvider) Tables(_ context.Context) (map[domain.Category]domain.RawTable, error) {
	return m.tables, m.err
}

type mockNormaliser struct {
	records []domain.PlayerRecord
	err     error
}

func (m *mockNormaliser) Normalise(_ domain.RawTable) ([]domain.PlayerRecord, driven.NormaliseStats, error) {
	return m.records, driven.NormaliseStats{RowsSeen: len(m.records)}, m.err
}

type mockSnapshotStore struct {
	saved   *driven.IndexSnapshot
	loadErr error
	saveErr error
}

func (m *mockSnapshotStore) Save(_ context.Context, snap *driven.IndexSnapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = snap
	return nil
}

func (m *mockSnapshotStore) Load(_ context.Context) (*driven.IndexSnapshot, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.saved == nil {
		return nil, domain.ErrNotFound
	}
	return m.saved, nil
}

func (m *mockSnapshotStore) Close() error { return nil }

func rushingYards(yards float64) *domain.RushingStats {
	return &domain.RushingStats{Season: 2024, Yards: &yards}
}

func indexerFixture(store driven.SnapshotStore) (*Indexer, *IndexHolder) {
	provider := &mockTableProvider{
		tables: map[domain.Category]domain.RawTable{
			domain.CategoryRushing: {Source: "rushing.csv", Headers: []string{"Player"}},
		},
	}
	norms := map[domain.Category]driven.TableNormaliser{
		domain.CategoryRushing: &mockNormaliser{records: []domain.PlayerRecord{
			{Name: "Derrick Henry", Team: "BAL", Positions: []string{"RB"}, Rushing: rushingYards(1921)},
			{Name: "Saquon Barkley", Team: "PHI", Positions: []string{"RB"}, Rushing: rushingYards(2005)},
		}},
	}
	holder := NewIndexHolder()
	return NewIndexer(provider, norms, newMockEmbedder(), store, holder, 2), holder
}

func TestIndexerBuild(t *testing.T) {
	store := &mockSnapshotStore{}
	indexer, holder := indexerFixture(store)

	require.NoError(t, indexer.Build(context.Background()))

	assert.Equal(t, 2, indexer.Size())
	require.NotNil(t, holder.Get())

	require.NotNil(t, store.saved)
	assert.Len(t, store.saved.Documents, 2)
	assert.Len(t, store.saved.Vectors, 2)
}

func TestIndexerBuild_SourceFailureKeepsOldIndex(t *testing.T) {
	indexer, holder := indexerFixture(nil)
	require.NoError(t, indexer.Build(context.Background()))
	old := holder.Get()

	indexer.tables = &mockTableProvider{err: fmt.Errorf("%w: missing file", domain.ErrDataSource)}
	err := indexer.Build(context.Background())
	assert.ErrorIs(t, err, domain.ErrDataSource)
	assert.Same(t, old, holder.Get())
}

func TestIndexerBuild_SnapshotSaveFailureNotFatal(t *testing.T) {
	store := &mockSnapshotStore{saveErr: errors.New("disk full")}
	indexer, holder := indexerFixture(store)

	require.NoError(t, indexer.Build(context.Background()))
	assert.NotNil(t, holder.Get())
}

func TestIndexerLoadSnapshot(t *testing.T) {
	store := &mockSnapshotStore{}
	indexer, _ := indexerFixture(store)
	require.NoError(t, indexer.Build(context.Background()))

	restoredIndexer, restoredHolder := indexerFixture(store)
	require.NoError(t, restoredIndexer.LoadSnapshot(context.Background()))
	assert.Equal(t, 2, restoredHolder.Size())
}

func TestIndexerLoadSnapshot_NotFound(t *testing.T) {
	indexer, _ := indexerFixture(&mockSnapshotStore{})
	err := indexer.LoadSnapshot(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIndexerLoadSnapshot_NoStore(t *testing.T) {
	indexer, _ := indexerFixture(nil)
	err := indexer.LoadSnapshot(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
