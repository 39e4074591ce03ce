package loaders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/unidoc/unioffice/v2/document"

	"docmuse/internal/rag/interfaces"
	"docmuse/internal/rag/schema"
)

// DocxLoader implements the Loader interface for reading Word (.docx) files.
type DocxLoader struct{}

// NewDocxLoader creates a new DocxLoader.
func NewDocxLoader() *DocxLoader {
	return &DocxLoader{}
}

// Load reads a .docx file, concatenates the text of all paragraph runs, and
// returns a single Document. Legacy binary .doc files dispatch here too; the
// open call fails on them and the file is skipped like any other extraction
// failure.
func (l *DocxLoader) Load(ctx context.Context, path string) ([]*schema.Document, error) {
	doc, err := document.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	var textBuilder strings.Builder
	for _, p := range doc.Paragraphs() {
		for _, r := range p.Runs() {
			textBuilder.WriteString(r.Text())
		}
		textBuilder.WriteString("\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: no extractable text in %s", ErrExtraction, path)
	}

	result := &schema.Document{
		ID:       uuid.New().String(),
		Text:     text,
		Metadata: baseMetadata(path),
	}

	return []*schema.Document{result}, nil
}

// compile-time check to ensure DocxLoader implements the Loader interface
var _ interfaces.Loader = (*DocxLoader)(nil)
