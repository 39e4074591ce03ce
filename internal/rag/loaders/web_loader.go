package loaders

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"docmuse/internal/rag/interfaces"
	"docmuse/internal/rag/schema"
)

// WebLoader implements the Loader interface for fetching and parsing web
// pages. Selected when an ingest path starts with http:// or https://.
type WebLoader struct{}

// NewWebLoader creates a new WebLoader.
func NewWebLoader() *WebLoader {
	return &WebLoader{}
}

// Load fetches content from a URL, extracts the visible text, and returns it
// as a single Document with the URL as its source.
func (l *WebLoader) Load(ctx context.Context, url string) ([]*schema.Document, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s returned %d", ErrExtraction, url, resp.StatusCode)
	}

	text, err := extractText(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	doc := &schema.Document{
		ID:   uuid.New().String(),
		Text: text,
		Metadata: map[string]interface{}{
			schema.MetadataKeySource: url,
		},
	}

	return []*schema.Document{doc}, nil
}

// extractText parses an HTML document and extracts all human-readable text,
// stripping away tags, scripts and styles.
func extractText(body io.Reader) (string, error) {
	z := html.NewTokenizer(body)
	var sb strings.Builder
	var inScript, inStyle bool

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return sb.String(), nil
			}
			return "", z.Err()
		case html.StartTagToken, html.EndTagToken:
			tn, _ := z.TagName()
			tag := string(tn)
			if tag == "script" {
				inScript = (tt == html.StartTagToken)
			} else if tag == "style" {
				inStyle = (tt == html.StartTagToken)
			}
		case html.TextToken:
			if !inScript && !inStyle {
				text := strings.TrimSpace(string(z.Text()))
				if len(text) > 0 {
					sb.WriteString(text)
					sb.WriteString(" ")
				}
			}
		}
	}
}

// compile-time check to ensure WebLoader implements the Loader interface
var _ interfaces.Loader = (*WebLoader)(nil)
