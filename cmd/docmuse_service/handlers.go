package main

import (
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/gobwas/glob"
	"github.com/google/uuid"

	"docmuse/internal/rag/loaders"
	"docmuse/internal/service"
	"docmuse/pkg/logger"
)

// HttpHandler exposes the assistant over REST.
type HttpHandler struct {
	assistant *service.Assistant
	uploadDir string
	log       *logger.Logger
}

func NewHttpHandler(assistant *service.Assistant, uploadDir string, log *logger.Logger) *HttpHandler {
	return &HttpHandler{assistant: assistant, uploadDir: uploadDir, log: log}
}

type queryRequest struct {
	Question string `json:"question" binding:"required"`
}

type sourceResponse struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	Score  float32 `json:"score"`
}

func (h *HttpHandler) query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.assistant.Answer(c.Request.Context(), req.Question)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sources := make([]sourceResponse, 0, len(answer.Sources))
	for _, chunk := range answer.Sources {
		sources = append(sources, sourceResponse{
			ID:     chunk.Document.ID,
			Source: chunk.Document.Source(),
			Score:  chunk.Score,
		})
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer.Text, "sources": sources})
}

type addDocumentsRequest struct {
	Paths []string `json:"paths" binding:"required"`
}

func (h *HttpHandler) addDocuments(c *gin.Context) {
	var req addDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	paths, err := expandPaths(req.Paths)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	added, err := h.assistant.AddDocuments(c.Request.Context(), paths)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chunks_added": added})
}

func (h *HttpHandler) uploadDocument(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}
	if !loaders.Supported(file.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported file format: %q", filepath.Ext(file.Filename))})
		return
	}

	// unique prefix so repeated uploads of the same file never collide
	savedPath := filepath.Join(h.uploadDir, fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(file.Filename)))
	if err := c.SaveUploadedFile(file, savedPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if mtype, err := mimetype.DetectFile(savedPath); err == nil {
		h.log.WithField("mime_type", mtype.String()).Info(fmt.Sprintf("saved upload %s", savedPath))
	}

	added, err := h.assistant.AddDocuments(c.Request.Context(), []string{savedPath})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chunks_added": added, "saved_path": savedPath})
}

func (h *HttpHandler) clearDocuments(c *gin.Context) {
	if err := h.assistant.ClearKnowledgeBase(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

func (h *HttpHandler) stats(c *gin.Context) {
	stats, err := h.assistant.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

type updateAPIKeyRequest struct {
	APIKey string `json:"api_key" binding:"required"`
}

func (h *HttpHandler) updateAPIKey(c *gin.Context) {
	var req updateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.assistant.UpdateAPIKey(c.Request.Context(), req.APIKey); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// expandPaths resolves glob patterns against the filesystem. URLs and paths
// without glob metacharacters pass through unchanged; a pattern that matches
// nothing simply contributes no paths.
func expandPaths(patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		if strings.HasPrefix(pattern, "http://") || strings.HasPrefix(pattern, "https://") ||
			!strings.ContainsAny(pattern, "*?[{") {
			paths = append(paths, pattern)
			continue
		}

		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		root := staticPrefix(pattern)
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if g.Match(filepath.ToSlash(path)) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %q: %w", root, err)
		}
	}
	return paths, nil
}

// staticPrefix returns the deepest directory of the pattern that contains no
// glob metacharacters, used as the walk root.
func staticPrefix(pattern string) string {
	dir := filepath.Dir(pattern)
	for strings.ContainsAny(dir, "*?[{") {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if dir == "" || strings.ContainsAny(dir, "*?[{") {
		return "."
	}
	return dir
}
