package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
	"github.com/gridiron-labs/huddle-cli/internal/core/ports/driven"
	"github.com/gridiron-labs/huddle-cli/internal/logger"
)

const (
	// DefaultTopK is the retrieval depth used when the caller passes k <= 0.
	DefaultTopK = 4

	// DefaultBuildWorkers bounds the embedding concurrency during build.
	DefaultBuildWorkers = 4

	// embedAttempts is how many times one document embedding is tried
	// before the whole build fails.
	embedAttempts = 2
)

// RetrievedDocument is one retrieval hit.
type RetrievedDocument struct {
	// Document is the matched document.
	Document domain.Document

	// Similarity is the cosine similarity to the query, higher is closer.
	Similarity float64
}

// SemanticIndex holds the full document set with one embedding per
// document. It is immutable after build and safe for concurrent retrieval
// without locking; a data refresh builds a new index and swaps it in via
// IndexHolder.
type SemanticIndex struct {
	embedder driven.EmbeddingService
	docs     []domain.Document
	vectors  [][]float32
	builtAt  time.Time
}

// BuildIndex embeds every document and assembles the index. Documents are
// embedded concurrently by a bounded worker pool; results are keyed by
// document position, so completion order never affects the index. Any
// embedding failure after retry fails the build.
func BuildIndex(ctx context.Context, embedder driven.EmbeddingService, docs []domain.Document, workers int) (*SemanticIndex, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: empty document set", domain.ErrIndexBuild)
	}
	if workers <= 0 {
		workers = DefaultBuildWorkers
	}

	logger.Section("Index Build")
	logger.Debug("embedding %d documents with %d workers (model %s)", len(docs), workers, embedder.ModelName())
	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	vectors := make([][]float32, len(docs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				vec, err := embedWithRetry(ctx, embedder, docs[i].Text)
				if err != nil {
					fail(fmt.Errorf("embedding document %s: %w", docs[i].ID, err))
					return
				}
				vectors[i] = vec
			}
		}()
	}

feed:
	for i := range docs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexBuild, firstErr)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexBuild, err)
	}

	indexed := make([]domain.Document, len(docs))
	copy(indexed, docs)

	logger.Info("index built: %d documents in %s", len(docs), time.Since(start).Round(time.Millisecond))
	return &SemanticIndex{
		embedder: embedder,
		docs:     indexed,
		vectors:  vectors,
		builtAt:  time.Now(),
	}, nil
}

// embedWithRetry tries the embedding call up to embedAttempts times.
// Cancellation is never retried.
func embedWithRetry(ctx context.Context, embedder driven.EmbeddingService, text string) ([]float32, error) {
	var lastErr error
	for attempt := 0; attempt < embedAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vec, err := embedder.Embed(ctx, text)
		if err == nil {
			return vec, nil
		}
		lastErr = err
		logger.Warn("embedding attempt %d failed: %v", attempt+1, err)
	}
	return nil, lastErr
}

// FromSnapshot reconstructs an index from a persisted snapshot. The
// snapshot must have been built with the same embedding model and
// dimensions as the live embedder, otherwise query vectors would live in a
// different space than document vectors.
func FromSnapshot(snap *driven.IndexSnapshot, embedder driven.EmbeddingService) (*SemanticIndex, error) {
	if snap == nil || len(snap.Documents) == 0 {
		return nil, fmt.Errorf("%w: empty snapshot", domain.ErrIndexBuild)
	}
	if snap.ModelName != embedder.ModelName() || snap.Dimensions != embedder.Dimensions() {
		return nil, fmt.Errorf("%w: snapshot %s/%d, embedder %s/%d",
			domain.ErrSnapshotIncompatible,
			snap.ModelName, snap.Dimensions,
			embedder.ModelName(), embedder.Dimensions())
	}
	if len(snap.Vectors) != len(snap.Documents) {
		return nil, fmt.Errorf("%w: %d documents but %d vectors", domain.ErrIndexBuild, len(snap.Documents), len(snap.Vectors))
	}

	return &SemanticIndex{
		embedder: embedder,
		docs:     snap.Documents,
		vectors:  snap.Vectors,
		builtAt:  snap.BuiltAt,
	}, nil
}

// Snapshot exports the index for persistence.
func (idx *SemanticIndex) Snapshot() *driven.IndexSnapshot {
	return &driven.IndexSnapshot{
		ModelName:  idx.embedder.ModelName(),
		Dimensions: idx.embedder.Dimensions(),
		BuiltAt:    idx.builtAt,
		Documents:  idx.docs,
		Vectors:    idx.vectors,
	}
}

// Size returns the number of indexed documents.
func (idx *SemanticIndex) Size() int {
	return len(idx.docs)
}

// Documents returns a copy of the indexed documents in insertion order.
func (idx *SemanticIndex) Documents() []domain.Document {
	out := make([]domain.Document, len(idx.docs))
	copy(out, idx.docs)
	return out
}

// Retrieve embeds the query and returns the k most similar documents,
// highest similarity first. Equal scores keep insertion order. Asking for
// more documents than the index holds returns everything.
func (idx *SemanticIndex) Retrieve(ctx context.Context, query string, k int) ([]RetrievedDocument, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	queryVec, err := idx.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding query: %v", domain.ErrRetrievalUnavailable, err)
	}

	hits := make([]RetrievedDocument, len(idx.docs))
	for i := range idx.docs {
		hits[i] = RetrievedDocument{
			Document:   idx.docs[i],
			Similarity: cosineSimilarity(queryVec, idx.vectors[i]),
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	logger.Debug("retrieved %d documents for query %q", len(hits), query)
	return hits, nil
}

// cosineSimilarity computes cosine similarity between two vectors.
// Returns 0 for mismatched or zero-length vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// IndexHolder publishes the active index. Swap is atomic from the reader's
// point of view: a retrieval sees either the old or the new index in full,
// never a partial one.
type IndexHolder struct {
	mu  sync.RWMutex
	idx *SemanticIndex
}

// NewIndexHolder creates an empty holder.
func NewIndexHolder() *IndexHolder {
	return &IndexHolder{}
}

// Get returns the active index, or nil before the first build.
func (h *IndexHolder) Get() *SemanticIndex {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.idx
}

// Swap installs a new index.
func (h *IndexHolder) Swap(idx *SemanticIndex) {
	h.mu.Lock()
	h.idx = idx
	h.mu.Unlock()
}

// Size returns the active index size, 0 when no index is installed.
func (h *IndexHolder) Size() int {
	if idx := h.Get(); idx != nil {
		return idx.Size()
	}
	return 0
}
