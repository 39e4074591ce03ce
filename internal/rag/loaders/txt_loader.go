package loaders

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/google/uuid"

	"docmuse/internal/rag/interfaces"
	"docmuse/internal/rag/schema"
)

// TxtLoader implements the Loader interface for reading plain text files.
type TxtLoader struct{}

// NewTxtLoader creates a new TxtLoader.
func NewTxtLoader() *TxtLoader {
	return &TxtLoader{}
}

// Load reads a UTF-8 text file from the given path and returns it as a single
// Document.
func (l *TxtLoader) Load(ctx context.Context, path string) ([]*schema.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", ErrExtraction, path)
	}

	doc := &schema.Document{
		ID:       uuid.New().String(),
		Text:     string(content),
		Metadata: baseMetadata(path),
	}

	return []*schema.Document{doc}, nil
}

// compile-time check to ensure TxtLoader implements the Loader interface
var _ interfaces.Loader = (*TxtLoader)(nil)
