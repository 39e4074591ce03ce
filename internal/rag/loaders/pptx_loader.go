package loaders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/unidoc/unioffice/v2/presentation"

	"docmuse/internal/rag/interfaces"
	"docmuse/internal/rag/schema"
)

// PptxLoader implements the Loader interface for reading PowerPoint (.pptx)
// files.
type PptxLoader struct{}

// NewPptxLoader creates a new PptxLoader.
func NewPptxLoader() *PptxLoader {
	return &PptxLoader{}
}

// Load reads a .pptx file and returns a single Document with the text of all
// slide placeholders, one slide per paragraph block.
func (l *PptxLoader) Load(ctx context.Context, path string) ([]*schema.Document, error) {
	ppt, err := presentation.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	var textBuilder strings.Builder
	for _, slide := range ppt.Slides() {
		var slideText strings.Builder
		for _, ph := range slide.PlaceHolders() {
			for _, para := range ph.Paragraphs() {
				for _, run := range para.X().EG_TextRun {
					if run.TextRunChoice != nil && run.TextRunChoice.R != nil {
						slideText.WriteString(run.TextRunChoice.R.T)
					}
				}
				slideText.WriteString("\n")
			}
		}
		if slideText.Len() > 0 {
			textBuilder.WriteString(slideText.String())
			textBuilder.WriteString("\n")
		}
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

// compile-time check to ensure PptxLoader implements the Loader interface
var _ interfaces.Loader = (*PptxLoader)(nil)
