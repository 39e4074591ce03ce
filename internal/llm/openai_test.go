package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAI_Generate(t *testing.T) {
	var gotRequest map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("Cannot decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"a grounded answer"}}]}`))
	}))
	defer server.Close()

	client := NewOpenAI("test-model", "test-key", server.URL)
	reply, err := client.Generate(context.Background(), "question")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if reply != "a grounded answer" {
		t.Errorf("Expected the completion text, got %q", reply)
	}

	if gotRequest["model"] != "test-model" {
		t.Errorf("Expected model test-model in the request, got %v", gotRequest["model"])
	}
	temp, ok := gotRequest["temperature"].(float64)
	if !ok || temp < 0.09 || temp > 0.11 {
		t.Errorf("Expected temperature 0.1 in the request, got %v", gotRequest["temperature"])
	}
}

func TestOpenAI_GenerateNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewOpenAI("test-model", "test-key", server.URL)
	if _, err := client.Generate(context.Background(), "question"); err == nil {
		t.Error("Expected error for a response without choices")
	}
}
