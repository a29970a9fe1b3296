package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
)

// mockEmbedder maps exact text to a fixed vector, falling back to a
// default. It counts calls and can fail a configurable number of times.
type mockEmbedder struct {
	vectors   map[string][]float32
	fallback  []float32
	failures  int32 // remaining calls that fail
	callCount int32
	model     string
}

func newMockEmbedder() *mockEmbedder {
	return &mockEmbedder{
		vectors:  make(map[string][]float32),
		fallback: []float32{0, 0, 1},
		model:    "mock-embed",
	}
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	atomic.AddInt32(&m.callCount, 1)
	if atomic.AddInt32(&m.failures, -1) >= 0 {
		return nil, errors.New("embedding backend down")
	}
	if v, ok := m.vectors[text]; ok {
		return v, nil
	}
	return m.fallback, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int              { return 3 }
func (m *mockEmbedder) ModelName() string            { return m.model }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

func testDocs() []domain.Document {
	return []domain.Document{
		{ID: "Derrick Henry|rushing", Player: "Derrick Henry", Category: domain.CategoryRushing, Text: "henry rushing"},
		{ID: "Saquon Barkley|combine", Player: "Saquon Barkley", Category: domain.CategoryCombine, Text: "barkley combine"},
		{ID: "Nick Chubb|injury", Player: "Nick Chubb", Category: domain.CategoryInjury, Text: "chubb injury"},
	}
}

func TestBuildIndex_Success(t *testing.T) {
	embedder := newMockEmbedder()
	idx, err := BuildIndex(context.Background(), embedder, testDocs(), 2)

	require.NoError(t, err)
	assert.Equal(t, 3, idx.Size())
	assert.Equal(t, int32(3), atomic.LoadInt32(&embedder.callCount))
}

func TestBuildIndex_EmptyDocumentSet(t *testing.T) {
	_, err := BuildIndex(context.Background(), newMockEmbedder(), nil, 2)
	assert.ErrorIs(t, err, domain.ErrIndexBuild)
}

func TestBuildIndex_TransientFailureRetried(t *testing.T) {
	embedder := newMockEmbedder()
	embedder.failures = 1 // first call fails, retry succeeds

	idx, err := BuildIndex(context.Background(), embedder, testDocs(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Size())
}

func TestBuildIndex_PersistentFailureFatal(t *testing.T) {
	embedder := newMockEmbedder()
	embedder.failures = 100

	_, err := BuildIndex(context.Background(), embedder, testDocs(), 2)
	assert.ErrorIs(t, err, domain.ErrIndexBuild)
}

func TestBuildIndex_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := BuildIndex(ctx, newMockEmbedder(), testDocs(), 2)
	assert.ErrorIs(t, err, domain.ErrIndexBuild)
}

func TestRetrieve_OrderedBySimilarity(t *testing.T) {
	embedder := newMockEmbedder()
	embedder.vectors["henry rushing"] = []float32{1, 0, 0}
	embedder.vectors["barkley combine"] = []float32{0.6, 0.8, 0}
	embedder.vectors["chubb injury"] = []float32{0, 1, 0}
	embedder.vectors["who leads the league in rushing?"] = []float32{1, 0.1, 0}

	idx, err := BuildIndex(context.Background(), embedder, testDocs(), 2)
	require.NoError(t, err)

	hits, err := idx.Retrieve(context.Background(), "who leads the league in rushing?", 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, "Derrick Henry|rushing", hits[0].Document.ID)
	assert.Equal(t, "Saquon Barkley|combine", hits[1].Document.ID)
	assert.Equal(t, "Nick Chubb|injury", hits[2].Document.ID)

	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Similarity, hits[i].Similarity)
	}
}

func TestRetrieve_AtMostK(t *testing.T) {
	idx, err := BuildIndex(context.Background(), newMockEmbedder(), testDocs(), 2)
	require.NoError(t, err)

	hits, err := idx.Retrieve(context.Background(), "anything", 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestRetrieve_KLargerThanIndexReturnsAll(t *testing.T) {
	idx, err := BuildIndex(context.Background(), newMockEmbedder(), testDocs(), 2)
	require.NoError(t, err)

	hits, err := idx.Retrieve(context.Background(), "anything", 50)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	seen := map[string]bool{}
	for _, h := range hits {
		assert.False(t, seen[h.Document.ID], "document returned twice")
		seen[h.Document.ID] = true
	}
}

func TestRetrieve_TiesKeepInsertionOrder(t *testing.T) {
	// All documents share the fallback vector, so every score ties.
	idx, err := BuildIndex(context.Background(), newMockEmbedder(), testDocs(), 2)
	require.NoError(t, err)

	hits, err := idx.Retrieve(context.Background(), "anything", 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "Derrick Henry|rushing", hits[0].Document.ID)
	assert.Equal(t, "Saquon Barkley|combine", hits[1].Document.ID)
	assert.Equal(t, "Nick Chubb|injury", hits[2].Document.ID)
}

func TestRetrieve_EmbeddingFailureIsRetrievalUnavailable(t *testing.T) {
	embedder := newMockEmbedder()
	idx, err := BuildIndex(context.Background(), embedder, testDocs(), 2)
	require.NoError(t, err)

	embedder.failures = 100
	_, err = idx.Retrieve(context.Background(), "anything", 3)
	assert.ErrorIs(t, err, domain.ErrRetrievalUnavailable)
}

func TestRetrieve_DefaultK(t *testing.T) {
	docs := testDocs()
	docs = append(docs,
		domain.Document{ID: "a|rushing", Player: "a", Category: domain.CategoryRushing, Text: "a"},
		domain.Document{ID: "b|rushing", Player: "b", Category: domain.CategoryRushing, Text: "b"},
		domain.Document{ID: "c|rushing", Player: "c", Category: domain.CategoryRushing, Text: "c"},
	)
	idx, err := BuildIndex(context.Background(), newMockEmbedder(), docs, 2)
	require.NoError(t, err)

	hits, err := idx.Retrieve(context.Background(), "anything", 0)
	require.NoError(t, err)
	assert.Len(t, hits, DefaultTopK)
}

func TestFromSnapshot_RoundTrip(t *testing.T) {
	embedder := newMockEmbedder()
	embedder.vectors["henry rushing"] = []float32{1, 0, 0}
	embedder.vectors["query"] = []float32{1, 0, 0}

	idx, err := BuildIndex(context.Background(), embedder, testDocs(), 2)
	require.NoError(t, err)

	restored, err := FromSnapshot(idx.Snapshot(), embedder)
	require.NoError(t, err)
	require.Equal(t, idx.Size(), restored.Size())

	want, err := idx.Retrieve(context.Background(), "query", 3)
	require.NoError(t, err)
	got, err := restored.Retrieve(context.Background(), "query", 3)
	require.NoError(t, err)

	require.Equal(t, len(want), len(got))
	for i := range want {
		assert.Equal(t, want[i].Document.ID, got[i].Document.ID)
		assert.InDelta(t, want[i].Similarity, got[i].Similarity, 1e-9)
	}
}

func TestFromSnapshot_ModelMismatch(t *testing.T) {
	embedder := newMockEmbedder()
	idx, err := BuildIndex(context.Background(), embedder, testDocs(), 2)
	require.NoError(t, err)

	snap := idx.Snapshot()
	other := newMockEmbedder()
	other.model = "different-model"

	_, err = FromSnapshot(snap, other)
	assert.ErrorIs(t, err, domain.ErrSnapshotIncompatible)
}

func TestIndexHolder_Swap(t *testing.T) {
	holder := NewIndexHolder()
	assert.Nil(t, holder.Get())
	assert.Equal(t, 0, holder.Size())

	idx, err := BuildIndex(context.Background(), newMockEmbedder(), testDocs(), 2)
	require.NoError(t, err)

	holder.Swap(idx)
	assert.Same(t, idx, holder.Get())
	assert.Equal(t, 3, holder.Size())
}

func TestBuildIndex_AddingPlayerLeavesExistingTextAlone(t *testing.T) {
	embedder := newMockEmbedder()
	base := testDocs()

	first, err := BuildIndex(context.Background(), embedder, base, 2)
	require.NoError(t, err)

	extended := append(append([]domain.Document{}, base...), domain.Document{
		ID: "Bijan Robinson|rushing", Player: "Bijan Robinson", Category: domain.CategoryRushing, Text: "robinson rushing",
	})
	second, err := BuildIndex(context.Background(), embedder, extended, 2)
	require.NoError(t, err)

	assert.Equal(t, first.Size()+1, second.Size())
	firstDocs := first.Documents()
	secondDocs := second.Documents()
	for i := range firstDocs {
		assert.Equal(t, firstDocs[i].Text, secondDocs[i].Text)
	}
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{1}))
	assert.Equal(t, 0.0, cosineSimilarity(nil, nil))
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 1}))
}
