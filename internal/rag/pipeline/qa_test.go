package pipeline

import (
	"strings"
	"testing"

	"docmuse/internal/rag/schema"
)

func TestBuildPrompt(t *testing.T) {
	chunks := []schema.RetrievedChunk{
		{
			Document: &schema.Document{
				ID:   "doc:0",
				Text: "The project started in 2019.",
				Metadata: map[string]interface{}{
					schema.MetadataKeySource: "history.txt",
				},
			},
			Score: 0.9,
		},
	}

	prompt := buildPrompt("When did the project start?", chunks)

	if !strings.Contains(prompt, "The project started in 2019.") {
		t.Error("Expected prompt to contain the chunk text")
	}
	if !strings.Contains(prompt, "history.txt") {
		t.Error("Expected prompt to name the chunk source")
	}
	if !strings.Contains(prompt, "When did the project start?") {
		t.Error("Expected prompt to contain the question")
	}
	if !strings.Contains(prompt, CannotAnswer) {
		t.Error("Expected prompt to carry the cannot-answer instruction")
	}
	if !strings.Contains(prompt, "ONLY") {
		t.Error("Expected prompt to restrict the model to the given context")
	}
}
