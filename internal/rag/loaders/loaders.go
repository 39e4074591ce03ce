package loaders

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/djherbis/times"
	"github.com/gabriel-vasile/mimetype"

	"docmuse/internal/rag/interfaces"
	"docmuse/internal/rag/schema"
)

// ErrUnsupportedFormat is returned when no loader is registered for a file's
// extension. Ingestion skips the file and continues the batch.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrExtraction wraps failures of a recognized format's extractor (corrupt
// file, encoding error). Ingestion skips the file and continues the batch.
var ErrExtraction = errors.New("extraction failed")

// FormatKind identifies a supported document format.
type FormatKind int

const (
	FormatPdf FormatKind = iota
	FormatText
	FormatWord
	FormatSlides
	FormatHtml
	FormatMarkdown
)

// extensionTable is the fixed extension dispatch table. Dispatch is by
// extension only; file content is never sniffed to pick a loader.
var extensionTable = map[string]FormatKind{
	".pdf":  FormatPdf,
	".txt":  FormatText,
	".docx": FormatWord,
	".doc":  FormatWord,
	".pptx": FormatSlides,
	".ppt":  FormatSlides,
	".html": FormatHtml,
	".htm":  FormatHtml,
	".md":   FormatMarkdown,
}

// ForPath returns the loader responsible for the given path. URLs go to the
// web loader; files are dispatched on their extension. Unknown extensions
// return ErrUnsupportedFormat.
func ForPath(path string) (interfaces.Loader, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return NewWebLoader(), nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	kind, ok := extensionTable[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	switch kind {
	case FormatPdf:
		return NewPdfLoader(), nil
	case FormatText:
		return NewTxtLoader(), nil
	case FormatWord:
		return NewDocxLoader(), nil
	case FormatSlides:
		return NewPptxLoader(), nil
	case FormatHtml:
		return NewHtmlLoader(), nil
	case FormatMarkdown:
		return NewMarkdownLoader(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Supported reports whether the path would dispatch to a loader.
func Supported(path string) bool {
	_, err := ForPath(path)
	return err == nil
}

// baseMetadata builds the metadata every file-backed loader attaches: the
// source path, the base file name and, when available, the file's modification
// time and detected content type. The content type is informational; dispatch
// stays extension-based.
func baseMetadata(path string) map[string]interface{} {
	md := map[string]interface{}{
		schema.MetadataKeySource:   path,
		schema.MetadataKeyFileName: filepath.Base(path),
	}
	if ts, err := times.Stat(path); err == nil {
		md[schema.MetadataKeyModified] = ts.ModTime().Format(time.RFC3339)
	}
	if mtype, err := mimetype.DetectFile(path); err == nil {
		md[schema.MetadataKeyContentType] = mtype.String()
	}
	return md
}
