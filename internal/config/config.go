package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppInfo corresponds to the 'app' section with basic application information.
type AppInfo struct {
	Name        string `yaml:"name"`        // application name
	Version     string `yaml:"version"`     // application version
	Environment string `yaml:"environment"` // "development" or "production"
}

// LoggerConfig defines the logger settings.
type LoggerConfig struct {
	Level string `yaml:"level"` // log level: "debug", "info", "warn", "error"
}

// ServerConfig defines the HTTP listener settings.
type ServerConfig struct {
	Address   string `yaml:"address"`   // listen address, e.g. ":8080"
	UploadDir string `yaml:"uploadDir"` // directory where uploaded files are saved
}

// OpenAIConfig holds settings for any OpenAI-compatible endpoint. Groq is
// reached by pointing baseURL at https://api.groq.com/openai/v1.
type OpenAIConfig struct {
	APIKey  string `yaml:"apiKey"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"baseURL,omitempty"`
}

// GeminiConfig holds settings for the Google Gemini API.
type GeminiConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// OllamaConfig holds settings for a local Ollama server.
type OllamaConfig struct {
	BaseURL string `yaml:"baseURL"` // defaults to http://localhost:11434
	Model   string `yaml:"model"`
}

// LLMConfig selects and configures the language-model provider.
type LLMConfig struct {
	Provider string       `yaml:"provider"` // "openai", "gemini" or "ollama"
	OpenAI   OpenAIConfig `yaml:"openai"`
	Gemini   GeminiConfig `yaml:"gemini"`
	Ollama   OllamaConfig `yaml:"ollama"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	Provider string       `yaml:"provider"` // "openai", "gemini" or "ollama"
	OpenAI   OpenAIConfig `yaml:"openai"`
	Gemini   GeminiConfig `yaml:"gemini"`
	Ollama   OllamaConfig `yaml:"ollama"`
}

// MilvusConfig defines the connection settings for the optional Milvus backend.
type MilvusConfig struct {
	Address string `yaml:"address"` // Milvus service address
}

// StoreConfig defines where and how the chunk collection is persisted.
type StoreConfig struct {
	Backend        string       `yaml:"backend"`        // "local" (default) or "milvus"
	Path           string       `yaml:"path"`           // directory for the local backend
	CollectionName string       `yaml:"collectionName"` // collection name within the store
	Milvus         MilvusConfig `yaml:"milvus"`
}

// ProcessingConfig defines document chunking and retrieval parameters.
// ChunkOverlap is a pointer so an explicit zero stays zero; nil means use the
// default.
type ProcessingConfig struct {
	ChunkSize    int  `yaml:"chunkSize"`    // target chunk length in characters
	ChunkOverlap *int `yaml:"chunkOverlap"` // overlap between consecutive chunks
	TopK         int  `yaml:"topK"`         // number of chunks retrieved per query
}

// TokenBucketConfig defines the token bucket rate-limiter settings.
type TokenBucketConfig struct {
	Rate     float64 `yaml:"rate"` // tokens generated per second
	Capacity int     `yaml:"capacity"`
}

// FixedWindowConfig defines the fixed window counter rate-limiter settings.
type FixedWindowConfig struct {
	Limit  int    `yaml:"limit"`
	Window string `yaml:"window"` // e.g. "1m", "30s"
}

// RateLimiterConfig defines the query-path rate limiter.
type RateLimiterConfig struct {
	Enabled     bool              `yaml:"enabled"`
	Algorithm   string            `yaml:"algorithm"` // "tokenBucket" or "fixedWindow"
	TokenBucket TokenBucketConfig `yaml:"tokenBucket"`
	FixedWindow FixedWindowConfig `yaml:"fixedWindow"`
}

// MiddlewareConfig groups HTTP middleware settings.
type MiddlewareConfig struct {
	RateLimiter RateLimiterConfig `yaml:"rateLimiter"`
}

// AppConfig is the root structure of the YAML configuration file.
type AppConfig struct {
	App        AppInfo          `yaml:"app"`
	Logger     LoggerConfig     `yaml:"logger"`
	Server     ServerConfig     `yaml:"server"`
	LLM        LLMConfig        `yaml:"llm"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Store      StoreConfig      `yaml:"store"`
	Processing ProcessingConfig `yaml:"processing"`
	Middleware MiddlewareConfig `yaml:"middleware"`
}

// Defaults shared with the documented configuration file. The chunking values
// match the knowledge-base design: 1000-character chunks with 200 characters
// of overlap, four chunks retrieved per query.
const (
	DefaultChunkSize      = 1000
	DefaultChunkOverlap   = 200
	DefaultTopK           = 4
	DefaultStorePath      = "vector_store"
	DefaultCollectionName = "docmuse_documents"
)

// LoadConfig reads and parses the YAML configuration file at path, then fills
// in defaults for unset processing and store values.
func LoadConfig(path string) (*AppConfig, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file '%s': %w", path, err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(yamlFile, &cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Processing.ChunkSize <= 0 {
		c.Processing.ChunkSize = DefaultChunkSize
	}
	if c.Processing.ChunkOverlap == nil || *c.Processing.ChunkOverlap < 0 {
		overlap := DefaultChunkOverlap
		if overlap >= c.Processing.ChunkSize {
			// keep the overlap valid for small chunk sizes
			overlap = c.Processing.ChunkSize / 5
		}
		c.Processing.ChunkOverlap = &overlap
	}
	if c.Processing.TopK <= 0 {
		c.Processing.TopK = DefaultTopK
	}
	if c.Store.Backend == "" {
		c.Store.Backend = "local"
	}
	if c.Store.Path == "" {
		c.Store.Path = DefaultStorePath
	}
	if c.Store.CollectionName == "" {
		c.Store.CollectionName = DefaultCollectionName
	}
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Server.UploadDir == "" {
		c.Server.UploadDir = "data"
	}
}
