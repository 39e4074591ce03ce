package main

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"

	"docmuse/pkg/logger"
)

func TestUploadDocument_UnsupportedFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// the assistant is never reached when the format check rejects the upload
	handler := NewHttpHandler(nil, t.TempDir(), logger.New("test"))
	router.POST("/api/v1/documents/upload", handler.uploadDocument)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "data.csv")
	if err != nil {
		t.Fatalf("Cannot build multipart body: %v", err)
	}
	part.Write([]byte("a,b,c"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for an unsupported upload, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("unsupported file format")) {
		t.Errorf("Expected an unsupported-format error, got %s", rec.Body.String())
	}
}

func TestStaticPrefix(t *testing.T) {
	cases := []struct {
		pattern string
		want    string
	}{
		{"docs/reports/*.pdf", "docs/reports"},
		{"docs/*/notes.txt", "docs"},
		{"*.txt", "."},
		{"docs/report.pdf", "docs"},
	}
	for _, tc := range cases {
		if got := staticPrefix(tc.pattern); got != tc.want {
			t.Errorf("staticPrefix(%q) = %q, expected %q", tc.pattern, got, tc.want)
		}
	}
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.pdf"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("Cannot write test file: %v", err)
		}
	}

	paths, err := expandPaths([]string{filepath.ToSlash(dir) + "/*.txt"})
	if err != nil {
		t.Fatalf("expandPaths() error = %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("Expected 2 matches, got %d: %v", len(paths), paths)
	}
	sort.Strings(paths)
	if filepath.Base(paths[0]) != "a.txt" || filepath.Base(paths[1]) != "b.txt" {
		t.Errorf("Unexpected matches: %v", paths)
	}
}

func TestExpandPaths_Passthrough(t *testing.T) {
	input := []string{"plain/file.txt", "https://example.com/page"}
	paths, err := expandPaths(input)
	if err != nil {
		t.Fatalf("expandPaths() error = %v", err)
	}
	if len(paths) != 2 || paths[0] != input[0] || paths[1] != input[1] {
		t.Errorf("Expected passthrough of non-glob inputs, got %v", paths)
	}
}

func TestExpandPaths_NoMatches(t *testing.T) {
	dir := t.TempDir()
	paths, err := expandPaths([]string{filepath.ToSlash(dir) + "/*.docx"})
	if err != nil {
		t.Fatalf("expandPaths() error = %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("Expected no matches, got %v", paths)
	}
}
