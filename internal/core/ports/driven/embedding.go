package driven

import "context"

// EmbeddingService turns text into fixed-dimension vectors.
//
// The same service (same model, same version) must be used for both index
// build and query embedding, otherwise similarity scores are meaningless.
// Implementations must be deterministic for identical text and model.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one call.
	// The result is positionally aligned with the input.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g. 384, 1536).
	Dimensions() int

	// ModelName returns the embedding model identifier. Persisted in index
	// snapshots so a model change invalidates the snapshot.
	ModelName() string

	// Ping makes a lightweight request to verify the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
