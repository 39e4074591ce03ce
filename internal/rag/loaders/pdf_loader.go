package loaders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"docmuse/internal/rag/interfaces"
	"docmuse/internal/rag/schema"
)

// PdfLoader implements the Loader interface for reading PDF files.
type PdfLoader struct{}

// NewPdfLoader creates a new PdfLoader.
func NewPdfLoader() *PdfLoader {
	return &PdfLoader{}
}

// Load reads a PDF file and returns one Document per page. Each Document
// carries a page metadata entry in addition to the common source fields.
// Pages that yield no text are skipped.
func (l *PdfLoader) Load(ctx context.Context, path string) ([]*schema.Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	defer f.Close()

	var documents []*schema.Document
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single broken page should not discard the rest of the file.
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		md := baseMetadata(path)
		md[schema.MetadataKeyPage] = i

		documents = append(documents, &schema.Document{
			ID:       uuid.New().String(),
			Text:     text,
			Metadata: md,
		})
	}

	if len(documents) == 0 {
		return nil, fmt.Errorf("%w: no extractable text in %s", ErrExtraction, path)
	}

	return documents, nil
}

// compile-time check to ensure PdfLoader implements the Loader interface
var _ interfaces.Loader = (*PdfLoader)(nil)
