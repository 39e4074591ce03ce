package pipeline

import (
	"context"
	"fmt"

	"docmuse/internal/rag/interfaces"
	"docmuse/internal/rag/schema"
	"docmuse/pkg/logger"
)

// RetrievalPipeline embeds a query and fetches the most similar chunks
// from the vector store.
type RetrievalPipeline struct {
	Embedder    interfaces.EmbeddingModel
	VectorStore interfaces.VectorStore
	TopK        int
	log         *logger.Logger
}

// NewRetrievalPipeline creates a new retrieval pipeline.
func NewRetrievalPipeline(embedder interfaces.EmbeddingModel, store interfaces.VectorStore, topK int, log *logger.Logger) *RetrievalPipeline {
	return &RetrievalPipeline{
		Embedder:    embedder,
		VectorStore: store,
		TopK:        topK,
		log:         log,
	}
}

// Run returns up to TopK chunks ranked by similarity to the query.
func (p *RetrievalPipeline) Run(ctx context.Context, query string) ([]schema.RetrievedChunk, error) {
	vectors, err := p.Embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embed query: empty result")
	}

	chunks, err := p.VectorStore.Search(ctx, vectors[0], p.TopK)
	if err != nil {
		return nil, fmt.Errorf("search vector store: %w", err)
	}
	p.log.Debug(fmt.Sprintf("retrieved %d chunks for query", len(chunks)))
	return chunks, nil
}
