package embedding

import "context"

// Embedding is the interface all embedding model clients implement. Vectors
// are deterministic for identical input and share one dimensionality for the
// life of the process.
type Embedding interface {
	// Embed generates the embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embedding vectors for a batch of texts, in order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
