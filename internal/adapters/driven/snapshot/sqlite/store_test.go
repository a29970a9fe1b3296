package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
	"github.com/gridiron-labs/huddle-cli/internal/core/ports/driven"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "data", "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleSnapshot() *driven.IndexSnapshot {
	return &driven.IndexSnapshot{
		ModelName:  "nomic-embed-text",
		Dimensions: 3,
		BuiltAt:    time.Date(2025, 11, 2, 9, 30, 0, 0, time.UTC),
		Documents: []domain.Document{
			{ID: "Derrick Henry|rushing", Player: "Derrick Henry", Category: domain.CategoryRushing, Text: "henry rushing"},
			{ID: "Saquon Barkley|combine", Player: "Saquon Barkley", Category: domain.CategoryCombine, Text: "barkley combine"},
		},
		Vectors: [][]float32{
			{0.1, -0.5, 1.25},
			{0, 0.25, -1},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSnapshot()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	want := sampleSnapshot()
	assert.Equal(t, want.ModelName, loaded.ModelName)
	assert.Equal(t, want.Dimensions, loaded.Dimensions)
	assert.True(t, want.BuiltAt.Equal(loaded.BuiltAt))
	assert.Equal(t, want.Documents, loaded.Documents)
	assert.Equal(t, want.Vectors, loaded.Vectors)
}

func TestLoad_NoSnapshot(t *testing.T) {
	store := openStore(t)
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSave_ReplacesPrevious(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSnapshot()))

	replacement := sampleSnapshot()
	replacement.ModelName = "text-embedding-3-small"
	replacement.Documents = replacement.Documents[:1]
	replacement.Vectors = replacement.Vectors[:1]
	require.NoError(t, store.Save(ctx, replacement))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-small", loaded.ModelName)
	assert.Len(t, loaded.Documents, 1)
	assert.Len(t, loaded.Vectors, 1)
}

func TestVectorCodec(t *testing.T) {
	vec := []float32{0, 1.5, -2.25, 3.14159}
	decoded, err := decodeVector(encodeVector(vec))
	require.NoError(t, err)
	assert.Equal(t, vec, decoded)

	_, err = decodeVector([]byte{1, 2, 3})
	assert.Error(t, err)
}
