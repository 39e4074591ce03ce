package embedding

import (
	"fmt"

	"docmuse/internal/config"
)

// NewClient is a factory that creates the embedding client selected by the
// embedding configuration section.
func NewClient(cfg config.EmbeddingConfig) (Embedding, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("no API key configured for openai embedding provider")
		}
		return NewOpenAIModel(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL), nil
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("no API key configured for gemini embedding provider")
		}
		return NewGoogleModel(cfg.Gemini.APIKey, cfg.Gemini.Model)
	case "ollama":
		return NewOllamaModel(cfg.Ollama.Model, cfg.Ollama.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
