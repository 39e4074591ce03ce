package loaders

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"docmuse/internal/rag/interfaces"
	"docmuse/internal/rag/schema"
)

// MarkdownLoader implements the Loader interface for reading Markdown (.md)
// files. The markup is kept as-is; headings and paragraph breaks give the
// splitter natural chunk boundaries.
type MarkdownLoader struct{}

// NewMarkdownLoader creates a new MarkdownLoader.
func NewMarkdownLoader() *MarkdownLoader {
	return &MarkdownLoader{}
}

// Load reads a Markdown file and returns it as a single Document.
func (l *MarkdownLoader) Load(ctx context.Context, path string) ([]*schema.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	doc := &schema.Document{
		ID:       uuid.New().String(),
		Text:     string(content),
		Metadata: baseMetadata(path),
	}

	return []*schema.Document{doc}, nil
}

// compile-time check to ensure MarkdownLoader implements the Loader interface
var _ interfaces.Loader = (*MarkdownLoader)(nil)
