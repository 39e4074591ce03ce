package splitters

import (
	"context"
	"strings"
	"testing"

	"docmuse/internal/rag/schema"
)

func newTestDoc(text string) *schema.Document {
	return &schema.Document{
		ID:   "doc",
		Text: text,
		Metadata: map[string]interface{}{
			schema.MetadataKeySource: "test.txt",
		},
	}
}

func TestNewRecursiveSplitter_Validation(t *testing.T) {
	if _, err := NewRecursiveSplitter(0, 0); err == nil {
		t.Error("Expected error for zero chunk size")
	}
	if _, err := NewRecursiveSplitter(100, 100); err == nil {
		t.Error("Expected error for overlap equal to chunk size")
	}
	if _, err := NewRecursiveSplitter(100, -1); err == nil {
		t.Error("Expected error for negative overlap")
	}
	if _, err := NewRecursiveSplitter(100, 20); err != nil {
		t.Errorf("Expected valid parameters to be accepted, got %v", err)
	}
}

func TestSplit_ShortDocumentSingleChunk(t *testing.T) {
	s, _ := NewRecursiveSplitter(1000, 200)
	chunks, err := s.Split(context.Background(), []*schema.Document{newTestDoc("short text")})
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "short text" {
		t.Errorf("Expected chunk text to be preserved, got %q", chunks[0].Text)
	}
	if chunks[0].ID != "doc:0" {
		t.Errorf("Expected chunk ID doc:0, got %s", chunks[0].ID)
	}
}

func TestSplit_EmptyDocumentProducesNoChunks(t *testing.T) {
	s, _ := NewRecursiveSplitter(1000, 200)
	chunks, err := s.Split(context.Background(), []*schema.Document{newTestDoc("")})
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("Expected no chunks for empty document, got %d", len(chunks))
	}
}

func TestSplit_ChunkSizeNeverExceeded(t *testing.T) {
	s, _ := NewRecursiveSplitter(100, 20)
	text := strings.Repeat("word one two three. ", 100)
	chunks, err := s.Split(context.Background(), []*schema.Document{newTestDoc(text)})
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	for i, chunk := range chunks {
		if n := len([]rune(chunk.Text)); n > 100 {
			t.Errorf("Chunk %d has %d runes, exceeds chunk size 100", i, n)
		}
	}
}

func TestSplit_CountAndOverlapFor3000Chars(t *testing.T) {
	// A run with no boundaries forces hard cuts, so the window math is exact:
	// starts 0, 800, 1600, 2400.
	s, _ := NewRecursiveSplitter(1000, 200)
	text := strings.Repeat("a", 3000)
	chunks, err := s.Split(context.Background(), []*schema.Document{newTestDoc(text)})
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) != 4 {
		t.Fatalf("Expected 4 chunks for 3000 chars at size 1000 overlap 200, got %d", len(chunks))
	}
	for i := 0; i < len(chunks)-1; i++ {
		a := []rune(chunks[i].Text)
		b := []rune(chunks[i+1].Text)
		tail := string(a[len(a)-200:])
		head := string(b[:200])
		if tail != head {
			t.Errorf("Chunks %d and %d do not overlap by 200 characters", i, i+1)
		}
	}
}

func TestSplit_PrefersParagraphBoundary(t *testing.T) {
	s, _ := NewRecursiveSplitter(100, 10)
	text := strings.Repeat("x", 50) + "\n\n" + strings.Repeat("y", 100)
	chunks, err := s.Split(context.Background(), []*schema.Document{newTestDoc(text)})
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("Expected at least 2 chunks, got %d", len(chunks))
	}
	if !strings.HasSuffix(chunks[0].Text, "\n\n") {
		t.Errorf("Expected first chunk to end at the paragraph break, got %q", chunks[0].Text)
	}
}

func TestSplit_Deterministic(t *testing.T) {
	s, _ := NewRecursiveSplitter(100, 20)
	text := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 50)

	first, err := s.Split(context.Background(), []*schema.Document{newTestDoc(text)})
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	second, err := s.Split(context.Background(), []*schema.Document{newTestDoc(text)})
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("Expected identical chunk counts, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Text != second[i].Text {
			t.Errorf("Chunk %d differs between runs", i)
		}
	}
}

func TestSplit_MetadataCopiedAndIndexed(t *testing.T) {
	s, _ := NewRecursiveSplitter(100, 20)
	text := strings.Repeat("z", 300)
	chunks, err := s.Split(context.Background(), []*schema.Document{newTestDoc(text)})
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	for i, chunk := range chunks {
		if chunk.Source() != "test.txt" {
			t.Errorf("Chunk %d lost source metadata", i)
		}
		if idx, ok := chunk.Metadata[schema.MetadataKeyChunkIndex].(int); !ok || idx != i {
			t.Errorf("Chunk %d has chunk_index %v, expected %d", i, chunk.Metadata[schema.MetadataKeyChunkIndex], i)
		}
	}
	// mutating one chunk's metadata must not leak into another
	chunks[0].Metadata["extra"] = true
	if _, ok := chunks[1].Metadata["extra"]; ok {
		t.Error("Metadata map shared between chunks")
	}
}
