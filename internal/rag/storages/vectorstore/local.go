package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"docmuse/internal/rag/interfaces"
	"docmuse/internal/rag/schema"
	"docmuse/pkg/logger"
)

// row is the persisted form of one collection entry.
type row struct {
	ID       string                 `json:"id"`
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata"`
	Vector   []float32              `json:"vector"`
}

// LocalStore is a directory-backed VectorStore. The collection lives in a
// single JSON file under the store directory and is reloaded on first use
// after a restart. Search is brute-force cosine similarity, which is adequate
// for single-process knowledge bases of this size.
//
// Storage failures never propagate: a broken file or disk degrades the store
// to an empty collection with a logged warning, so the system stays queryable.
type LocalStore struct {
	mu         sync.RWMutex
	log        *logger.Logger
	dir        string
	collection string
	loaded     bool
	rows       []row
}

// NewLocalStore creates a LocalStore for the given directory and collection
// name. Nothing is read from disk until the first operation.
func NewLocalStore(dir, collection string, log *logger.Logger) *LocalStore {
	return &LocalStore{log: log, dir: dir, collection: collection}
}

func (s *LocalStore) file() string {
	return filepath.Join(s.dir, s.collection+".json")
}

// ensureLoaded loads the persisted collection if present and non-empty,
// otherwise starts with an empty collection. Idempotent. Callers must hold
// the write lock.
func (s *LocalStore) ensureLoaded() {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := os.ReadFile(s.file())
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn(fmt.Sprintf("Cannot read collection %s: %v. Starting empty.", s.file(), err))
		}
		return
	}
	if len(data) == 0 {
		return
	}

	var rows []row
	if err := json.Unmarshal(data, &rows); err != nil {
		s.log.Warn(fmt.Sprintf("Collection file %s is corrupt: %v. Starting empty.", s.file(), err))
		return
	}
	s.rows = rows
	s.log.Info(fmt.Sprintf("Loaded existing collection %q with %d entries", s.collection, len(rows)))
}

// Add appends embedded chunks to the collection and persists it. Chunks with
// no embedding or no source metadata are skipped with a warning. A persist
// failure degrades the store to an empty, uninitialized state rather than
// keeping rows that would vanish on restart.
func (s *LocalStore) Add(ctx context.Context, docs []*schema.Document) error {
	if len(docs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	for _, doc := range docs {
		if len(doc.Embedding) == 0 {
			s.log.Warn(fmt.Sprintf("Chunk %s has no embedding, skipping", doc.ID))
			continue
		}
		if doc.Source() == "" {
			s.log.Warn(fmt.Sprintf("Chunk %s has no source metadata, skipping", doc.ID))
			continue
		}
		s.rows = append(s.rows, row{
			ID:       doc.ID,
			Text:     doc.Text,
			Metadata: doc.Metadata,
			Vector:   doc.Embedding,
		})
	}

	if err := s.persist(); err != nil {
		s.log.Error(fmt.Sprintf("Cannot persist collection %q: %v. Degrading to empty collection.", s.collection, err))
		s.rows = nil
		s.loaded = false
		return fmt.Errorf("persist collection %q: %w", s.collection, err)
	}
	return nil
}

// persist writes the collection atomically. Callers must hold the write lock.
func (s *LocalStore) persist() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(s.rows)
	if err != nil {
		return err
	}
	tmp := s.file() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.file())
}

// Search returns the topK entries nearest to the query embedding, ordered
// nearest-first. An empty or uninitialized collection yields an empty slice,
// never an error.
func (s *LocalStore) Search(ctx context.Context, embedding []float32, topK int) ([]schema.RetrievedChunk, error) {
	s.mu.Lock()
	s.ensureLoaded()
	s.mu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.rows) == 0 || topK <= 0 {
		return []schema.RetrievedChunk{}, nil
	}

	results := make([]schema.RetrievedChunk, 0, len(s.rows))
	for i := range s.rows {
		r := &s.rows[i]
		score := cosineSimilarity(embedding, r.Vector)
		results = append(results, schema.RetrievedChunk{
			Document: &schema.Document{
				ID:       r.ID,
				Text:     r.Text,
				Metadata: r.Metadata,
			},
			Score: score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

// Count returns the number of entries in the collection, 0 if uninitialized.
func (s *LocalStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	return int64(len(s.rows)), nil
}

// Clear deletes the persisted collection file and resets the in-memory state.
// The next operation starts from a fresh empty collection.
func (s *LocalStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows = nil
	s.loaded = false
	if err := os.Remove(s.file()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove collection %q: %w", s.collection, err)
	}
	s.log.Info(fmt.Sprintf("Cleared collection %q", s.collection))
	return nil
}

// cosineSimilarity computes the cosine similarity between two vectors.
// Returns 0 for mismatched lengths or zero vectors.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float32
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}

// compile-time check to ensure LocalStore implements the VectorStore interface
var _ interfaces.VectorStore = (*LocalStore)(nil)
