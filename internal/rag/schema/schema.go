package schema

const (
	// MetadataKeySource is the key for the originating file path or URL.
	// Every chunk persisted into the vector store must carry it.
	MetadataKeySource = "source"
	// MetadataKeyFileName is the key for the source file name.
	MetadataKeyFileName = "file_name"
	// MetadataKeyPage is the key for the page number within the source document.
	// Only PDF extraction yields it.
	MetadataKeyPage = "page"
	// MetadataKeyChunkIndex is the key for the position of a chunk within its
	// source document.
	MetadataKeyChunkIndex = "chunk_index"
	// MetadataKeyModified is the key for the source file's modification time
	// (RFC 3339).
	MetadataKeyModified = "modified"
	// MetadataKeyContentType is the key for the content type detected at upload
	// time. Informational only; loader dispatch is by extension.
	MetadataKeyContentType = "content_type"
)

// Document is the central data structure representing a piece of text and its
// associated data. Loaders produce one or more Documents per source file; the
// splitter turns them into chunk-sized Documents that flow through indexing,
// retrieval and answering.
type Document struct {
	// ID is the unique identifier for this document or chunk.
	ID string

	// Text is the string content.
	Text string

	// Embedding is the vector representation of the text. Empty until the
	// indexing pipeline embeds the chunk.
	Embedding []float32

	// Metadata holds arbitrary data about the document, e.g. source, page,
	// chunk_index.
	Metadata map[string]interface{}
}

// Source returns the source metadata value, or the empty string if unset.
func (d *Document) Source() string {
	if d.Metadata == nil {
		return ""
	}
	if s, ok := d.Metadata[MetadataKeySource].(string); ok {
		return s
	}
	return ""
}

// RetrievedChunk pairs a chunk with its similarity score, nearest-first order
// is maintained by the vector store.
type RetrievedChunk struct {
	Document *Document
	Score    float32
}

// Answer is the final response to a question: the answer text plus the chunks
// that grounded it. Sources is empty when the answer is one of the fixed
// refusal or cannot-answer messages.
type Answer struct {
	Text    string
	Sources []RetrievedChunk
}
