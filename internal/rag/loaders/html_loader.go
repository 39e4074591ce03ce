package loaders

import (
	"context"
	"fmt"
	"os"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/google/uuid"

	"docmuse/internal/rag/interfaces"
	"docmuse/internal/rag/schema"
)

// HtmlLoader implements the Loader interface for reading local HTML files.
// The markup is converted to Markdown, which drops scripts and styling while
// keeping headings and paragraph structure for the splitter.
type HtmlLoader struct{}

// NewHtmlLoader creates a new HtmlLoader.
func NewHtmlLoader() *HtmlLoader {
	return &HtmlLoader{}
}

// Load reads an HTML file, converts it to Markdown text, and returns it as a
// single Document.
func (l *HtmlLoader) Load(ctx context.Context, path string) ([]*schema.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	text, err := htmltomarkdown.ConvertString(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: no extractable text in %s", ErrExtraction, path)
	}

	doc := &schema.Document{
		ID:       uuid.New().String(),
		Text:     text,
		Metadata: baseMetadata(path),
	}

	return []*schema.Document{doc}, nil
}

// compile-time check to ensure HtmlLoader implements the Loader interface
var _ interfaces.Loader = (*HtmlLoader)(nil)
