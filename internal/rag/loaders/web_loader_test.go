package loaders

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWebLoader_Load(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><style>body{color:red}</style></head>` +
			`<body><script>var hidden = 1;</script><h1>Welcome</h1><p>Visible content here.</p></body></html>`))
	}))
	defer server.Close()

	docs, err := NewWebLoader().Load(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("Expected 1 document, got %d", len(docs))
	}

	text := docs[0].Text
	if !strings.Contains(text, "Welcome") || !strings.Contains(text, "Visible content here.") {
		t.Errorf("Expected visible text to be extracted, got %q", text)
	}
	if strings.Contains(text, "hidden") || strings.Contains(text, "color:red") {
		t.Errorf("Expected script and style content to be stripped, got %q", text)
	}
	if docs[0].Source() != server.URL {
		t.Errorf("Expected source %q, got %q", server.URL, docs[0].Source())
	}
}

func TestWebLoader_HTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewWebLoader().Load(context.Background(), server.URL)
	if !errors.Is(err, ErrExtraction) {
		t.Errorf("Expected ErrExtraction on HTTP 404, got %v", err)
	}
}
