package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"docmuse/internal/rag/schema"
	"docmuse/internal/rag/splitters"
	"docmuse/pkg/logger"
)

type constantEmbedder struct{ err error }

func (e constantEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0}
	}
	return vectors, nil
}

type recordingStore struct {
	addErr error
	added  int
}

func (s *recordingStore) Add(ctx context.Context, docs []*schema.Document) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.added += len(docs)
	return nil
}
func (s *recordingStore) Search(ctx context.Context, embedding []float32, topK int) ([]schema.RetrievedChunk, error) {
	return []schema.RetrievedChunk{}, nil
}
func (s *recordingStore) Count(ctx context.Context) (int64, error) { return int64(s.added), nil }
func (s *recordingStore) Clear(ctx context.Context) error          { return nil }

func newIndexingFixture(t *testing.T, embedder constantEmbedder, store *recordingStore) *IndexingPipeline {
	t.Helper()
	splitter, err := splitters.NewRecursiveSplitter(1000, 200)
	if err != nil {
		t.Fatalf("NewRecursiveSplitter() error = %v", err)
	}
	return NewIndexingPipeline(splitter, embedder, store, logger.New("test"))
}

func writeTxt(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Cannot write test file: %v", err)
	}
	return path
}

func TestIndexingRun_EmbeddingFailureAddsZeroChunks(t *testing.T) {
	store := &recordingStore{}
	p := newIndexingFixture(t, constantEmbedder{err: errors.New("embedding provider down")}, store)

	added, err := p.Run(context.Background(), []string{writeTxt(t, "some content")})
	if err != nil {
		t.Fatalf("Expected embedding failure to degrade, got error: %v", err)
	}
	if added != 0 {
		t.Errorf("Expected 0 chunks added, got %d", added)
	}
	if store.added != 0 {
		t.Errorf("Expected nothing stored, got %d", store.added)
	}
}

func TestIndexingRun_StoreFailureAddsZeroChunks(t *testing.T) {
	store := &recordingStore{addErr: errors.New("disk full")}
	p := newIndexingFixture(t, constantEmbedder{}, store)

	added, err := p.Run(context.Background(), []string{writeTxt(t, "some content")})
	if err != nil {
		t.Fatalf("Expected storage failure to degrade, got error: %v", err)
	}
	if added != 0 {
		t.Errorf("Expected 0 chunks added, got %d", added)
	}
}

func TestIndexingRun_SuccessCountsChunks(t *testing.T) {
	store := &recordingStore{}
	p := newIndexingFixture(t, constantEmbedder{}, store)

	added, err := p.Run(context.Background(), []string{writeTxt(t, "some content")})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if added != 1 || store.added != 1 {
		t.Errorf("Expected 1 chunk added and stored, got %d added, %d stored", added, store.added)
	}
}
