package splitters

import (
	"context"
	"fmt"

	"docmuse/internal/rag/interfaces"
	"docmuse/internal/rag/schema"
)

// RecursiveSplitter implements the Splitter interface by cutting documents
// into character windows of at most ChunkSize, preferring to break at natural
// boundaries. Boundary preference, most to least desirable: paragraph break,
// line break, sentence end, word gap. A hard cut is used only when no boundary
// exists in the window. Consecutive chunks overlap by up to ChunkOverlap
// characters so information spanning a boundary appears in two chunks.
//
// Splitting is deterministic: the same document and parameters always produce
// the same chunk sequence.
type RecursiveSplitter struct {
	ChunkSize    int
	ChunkOverlap int
}

// NewRecursiveSplitter creates a new RecursiveSplitter. chunkOverlap must be
// smaller than chunkSize.
func NewRecursiveSplitter(chunkSize, chunkOverlap int) (*RecursiveSplitter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap %d must be in [0, %d)", chunkOverlap, chunkSize)
	}
	return &RecursiveSplitter{ChunkSize: chunkSize, ChunkOverlap: chunkOverlap}, nil
}

// Split splits a list of documents into overlapping chunks. Each chunk
// inherits a deep copy of its source document's metadata plus a chunk_index
// entry, and gets the deterministic ID "<docID>:<index>".
func (s *RecursiveSplitter) Split(ctx context.Context, docs []*schema.Document) ([]*schema.Document, error) {
	var chunks []*schema.Document

	for _, doc := range docs {
		runes := []rune(doc.Text)
		if len(runes) == 0 {
			continue
		}

		index := 0
		start := 0
		for start < len(runes) {
			end := start + s.ChunkSize
			if end >= len(runes) {
				end = len(runes)
			} else {
				end = s.cutPoint(runes, start, end)
			}

			chunk := &schema.Document{
				ID:       fmt.Sprintf("%s:%d", doc.ID, index),
				Text:     string(runes[start:end]),
				Metadata: copyMetadata(doc.Metadata),
			}
			chunk.Metadata[schema.MetadataKeyChunkIndex] = index
			chunks = append(chunks, chunk)

			if end == len(runes) {
				break
			}
			start = end - s.ChunkOverlap
			index++
		}
	}

	return chunks, nil
}

// cutPoint returns the end of the chunk starting at start, snapping the hard
// limit back to the most desirable boundary found in the window. The returned
// point is always greater than start+ChunkOverlap so that the next chunk makes
// progress.
func (s *RecursiveSplitter) cutPoint(runes []rune, start, limit int) int {
	// Earliest acceptable cut. Anything at or before start+overlap would make
	// the next window start at or before the current one.
	floor := start + s.ChunkOverlap + 1
	if floor >= limit {
		return limit
	}

	if p := lastBoundary(runes, floor, limit, isParagraphBreak); p > 0 {
		return p
	}
	if p := lastBoundary(runes, floor, limit, isLineBreak); p > 0 {
		return p
	}
	if p := lastBoundary(runes, floor, limit, isSentenceEnd); p > 0 {
		return p
	}
	if p := lastBoundary(runes, floor, limit, isWordGap); p > 0 {
		return p
	}
	return limit
}

// lastBoundary scans backward for the latest position p in (floor, limit] for
// which match reports a boundary directly before p. Returns 0 when none is
// found.
func lastBoundary(runes []rune, floor, limit int, match func([]rune, int) bool) int {
	for p := limit; p > floor; p-- {
		if match(runes, p) {
			return p
		}
	}
	return 0
}

func isParagraphBreak(runes []rune, p int) bool {
	return p >= 2 && runes[p-1] == '\n' && runes[p-2] == '\n'
}

func isLineBreak(runes []rune, p int) bool {
	return runes[p-1] == '\n'
}

func isSentenceEnd(runes []rune, p int) bool {
	if p < 2 {
		return false
	}
	c := runes[p-2]
	return (c == '.' || c == '!' || c == '?') && runes[p-1] == ' '
}

func isWordGap(runes []rune, p int) bool {
	return runes[p-1] == ' '
}

func copyMetadata(md map[string]interface{}) map[string]interface{} {
	newMd := make(map[string]interface{}, len(md)+1)
	for k, v := range md {
		newMd[k] = v
	}
	return newMd
}

// compile-time check to ensure RecursiveSplitter implements the Splitter interface
var _ interfaces.Splitter = (*RecursiveSplitter)(nil)
