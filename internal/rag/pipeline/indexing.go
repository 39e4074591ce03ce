package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"docmuse/internal/rag/interfaces"
	"docmuse/internal/rag/loaders"
	"docmuse/internal/rag/schema"
	"docmuse/pkg/logger"
)

// IndexingPipeline orchestrates the document ingestion flow:
// load -> split -> embed -> store.
type IndexingPipeline struct {
	Splitter    interfaces.Splitter
	Embedder    interfaces.EmbeddingModel
	VectorStore interfaces.VectorStore
	log         *logger.Logger
}

// NewIndexingPipeline creates a new indexing pipeline.
func NewIndexingPipeline(splitter interfaces.Splitter, embedder interfaces.EmbeddingModel, store interfaces.VectorStore, log *logger.Logger) *IndexingPipeline {
	return &IndexingPipeline{
		Splitter:    splitter,
		Embedder:    embedder,
		VectorStore: store,
		log:         log,
	}
}

// Run ingests the given document paths and returns the number of chunks
// added to the vector store. A path that cannot be loaded is skipped with
// a warning; the remaining paths are still processed. Embedding and storage
// failures are logged and surface as 0 chunks added, never as an error, so
// ingestion can always be retried.
func (p *IndexingPipeline) Run(ctx context.Context, paths []string) (int, error) {
	var chunks []*schema.Document

	for _, path := range paths {
		docs, err := p.loadOne(ctx, path)
		if err != nil {
			p.log.Warn(fmt.Sprintf("skipping %s: %v", path, err))
			continue
		}

		split, err := p.Splitter.Split(ctx, docs)
		if err != nil {
			p.log.Warn(fmt.Sprintf("skipping %s: split failed: %v", path, err))
			continue
		}
		for _, chunk := range split {
			if chunk.Source() == "" {
				if chunk.Metadata == nil {
					chunk.Metadata = map[string]interface{}{}
				}
				chunk.Metadata[schema.MetadataKeySource] = path
			}
		}
		chunks = append(chunks, split...)
	}

	if len(chunks) == 0 {
		p.log.Warn("no chunks produced from the given paths")
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	vectors, err := p.Embedder.Embed(ctx, texts)
	if err != nil {
		p.log.Error(fmt.Sprintf("embedding failed, no chunks added: %v", err))
		return 0, nil
	}
	if len(vectors) != len(chunks) {
		p.log.Error(fmt.Sprintf("embedding returned %d vectors for %d chunks, no chunks added", len(vectors), len(chunks)))
		return 0, nil
	}
	for i, chunk := range chunks {
		chunk.Embedding = vectors[i]
	}

	if err := p.VectorStore.Add(ctx, chunks); err != nil {
		p.log.Error(fmt.Sprintf("vector store add failed, no chunks added: %v", err))
		return 0, nil
	}

	p.log.WithPayload(map[string]interface{}{
		"chunks": len(chunks),
		"paths":  len(paths),
	}).Info("indexing complete")
	return len(chunks), nil
}

// loadOne resolves a loader for the path and extracts its documents.
func (p *IndexingPipeline) loadOne(ctx context.Context, path string) ([]*schema.Document, error) {
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("file not found: %w", err)
		}
	}

	loader, err := loaders.ForPath(path)
	if err != nil {
		if errors.Is(err, loaders.ErrUnsupportedFormat) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve loader: %w", err)
	}

	docs, err := loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return docs, nil
}
