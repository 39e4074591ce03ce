package interfaces

import (
	"context"

	"docmuse/internal/rag/schema"
)

// Loader is the interface for loading data from a source (file or URL) and
// converting it into a list of Document objects.
type Loader interface {
	Load(ctx context.Context, path string) ([]*schema.Document, error)
}

// Splitter is the interface for splitting a list of Documents into smaller
// chunks suitable for embedding.
type Splitter interface {
	Split(ctx context.Context, docs []*schema.Document) ([]*schema.Document, error)
}

// VectorStore is the interface for storing and querying chunk vectors.
// Implementations must treat an empty or uninitialized collection as a valid
// state: Search returns an empty slice, Count returns 0.
type VectorStore interface {
	Add(ctx context.Context, docs []*schema.Document) error
	Search(ctx context.Context, embedding []float32, topK int) ([]schema.RetrievedChunk, error)
	Count(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error
}

// EmbeddingModel is the interface for a text embedding model.
type EmbeddingModel interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// LLM is the interface for a large language model that can generate text.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
