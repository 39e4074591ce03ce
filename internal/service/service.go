package service

import (
	"context"
	"fmt"
	"sync"

	"docmuse/internal/config"
	"docmuse/internal/embedding"
	"docmuse/internal/llm"
	"docmuse/internal/rag/embeddings"
	"docmuse/internal/rag/interfaces"
	"docmuse/internal/rag/pipeline"
	"docmuse/internal/rag/schema"
	"docmuse/internal/rag/security"
	"docmuse/internal/rag/splitters"
	"docmuse/internal/rag/storages/vectorstore"
	"docmuse/pkg/logger"
)

// Fixed replies returned by the query path. They are part of the API contract:
// clients match on them, so the wording must not drift.
const (
	MsgNotInitialized = "The assistant is not initialized. Please set a valid API key and try again."
	MsgNoDocuments    = "No documents have been uploaded yet. Please add documents to the knowledge base first."
	MsgPromptRefusal  = "I can't share details about my internal instructions or configuration. I can only answer questions about the uploaded documents."
	MsgTopicRefusal   = "I can't help with that topic. I can only answer questions about the content of the uploaded documents."
)

// Stats summarizes the state of the knowledge base.
type Stats struct {
	CollectionCount int64 `json:"collection_count"`
	Initialized     bool  `json:"initialized"`
}

// Assistant is the application context object. It owns every long-lived
// dependency of the query and ingestion paths and is constructed once in main.
type Assistant struct {
	mu  sync.RWMutex
	cfg *config.AppConfig
	log *logger.Logger

	store    interfaces.VectorStore
	embedder interfaces.EmbeddingModel
	gate     *security.Gate

	llm     interfaces.LLM
	initErr error

	indexing  *pipeline.IndexingPipeline
	retrieval *pipeline.RetrievalPipeline
	qa        *pipeline.QAPipeline
}

// NewAssistant wires the vector store, embedding client and language model
// from configuration. A failed language-model initialization is not fatal:
// the assistant starts with the query path disabled and reports the reason
// through InitializationError, so the API key can be fixed at runtime.
func NewAssistant(ctx context.Context, cfg *config.AppConfig, log *logger.Logger) (*Assistant, error) {
	store, err := vectorstore.Open(ctx, cfg.Store, log)
	if err != nil {
		return nil, fmt.Errorf("open vector store: %w", err)
	}

	embedClient, err := embedding.NewClient(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("create embedding client: %w", err)
	}
	embedder := embeddings.NewAdapter(embedClient)

	a := &Assistant{
		cfg:      cfg,
		log:      log,
		store:    store,
		embedder: embedder,
		gate:     security.NewGate(),
	}

	model, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		log.Warn(fmt.Sprintf("LLM not initialized: %v", err))
		a.initErr = err
	} else {
		a.llm = model
	}

	a.rebuildPipelines()
	return a, nil
}

func newSplitter(cfg config.ProcessingConfig) (interfaces.Splitter, error) {
	overlap := 0
	if cfg.ChunkOverlap != nil {
		overlap = *cfg.ChunkOverlap
	}
	return splitters.NewRecursiveSplitter(cfg.ChunkSize, overlap)
}

// rebuildPipelines recreates the pipelines from the current dependencies.
// Callers must hold the write lock, or be the constructor.
func (a *Assistant) rebuildPipelines() {
	splitter, err := newSplitter(a.cfg.Processing)
	if err != nil {
		// only reachable with an invalid overlap/size pair, which
		// applyDefaults prevents
		a.log.Fatal(fmt.Sprintf("invalid processing configuration: %v", err))
	}
	a.indexing = pipeline.NewIndexingPipeline(splitter, a.embedder, a.store, a.log)
	a.retrieval = pipeline.NewRetrievalPipeline(a.embedder, a.store, a.cfg.Processing.TopK, a.log)
	a.qa = pipeline.NewQAPipeline(a.llm, a.log)
}

// Answer runs the query path. The gates are checked in a fixed order: LLM
// availability, knowledge-base emptiness, then the security gate. Only a
// question that clears all three reaches retrieval and generation. The
// returned Answer always carries the chunks that were used, which may be
// empty.
func (a *Assistant) Answer(ctx context.Context, question string) (*schema.Answer, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.llm == nil {
		return &schema.Answer{Text: MsgNotInitialized}, nil
	}

	count, err := a.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	if count == 0 {
		return &schema.Answer{Text: MsgNoDocuments}, nil
	}

	switch a.gate.Classify(question) {
	case security.VerdictPromptExtraction:
		a.log.Warn("query refused: prompt extraction attempt")
		return &schema.Answer{Text: MsgPromptRefusal}, nil
	case security.VerdictSensitiveTopic:
		a.log.Warn("query refused: sensitive topic")
		return &schema.Answer{Text: MsgTopicRefusal}, nil
	}

	chunks, err := a.retrieval.Run(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}

	text, err := a.qa.Run(ctx, question, chunks)
	if err != nil {
		return nil, fmt.Errorf("answer question: %w", llm.ClassifyAPIError(err))
	}
	if len(chunks) == 0 {
		// nothing retrieved means nothing to ground the answer on,
		// whatever the model said
		text = pipeline.CannotAnswer
	}
	return &schema.Answer{Text: text, Sources: chunks}, nil
}

// AddDocuments ingests the given paths and returns the number of chunks
// added. Paths that cannot be loaded are skipped; an empty or all-failed
// input yields 0 with a warning, not an error.
func (a *Assistant) AddDocuments(ctx context.Context, paths []string) (int, error) {
	if len(paths) == 0 {
		a.log.Warn("AddDocuments called with no paths")
		return 0, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	added, err := a.indexing.Run(ctx, paths)
	if err != nil {
		return 0, err
	}
	if added > 0 {
		a.rebuildPipelines()
	}
	return added, nil
}

// UpdateAPIKey replaces the provider API key, recreates the language-model
// client and synchronously verifies it with a minimal test call. On failure
// the previous client (if any) stays in place and the classified error is
// returned.
func (a *Assistant) UpdateAPIKey(ctx context.Context, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	cfg := a.cfg.LLM
	switch cfg.Provider {
	case "openai":
		cfg.OpenAI.APIKey = key
	case "gemini":
		cfg.Gemini.APIKey = key
	default:
		return fmt.Errorf("provider %s does not use an API key", cfg.Provider)
	}

	model, err := llm.NewClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create LLM client: %w", err)
	}
	if _, err := model.Generate(ctx, "Hello"); err != nil {
		classified := llm.ClassifyAPIError(err)
		a.log.Warn(fmt.Sprintf("API key verification failed: %v", classified))
		return fmt.Errorf("API key verification failed: %w", classified)
	}

	a.cfg.LLM = cfg
	a.llm = model
	a.initErr = nil
	a.rebuildPipelines()
	a.log.Info("API key updated and verified")
	return nil
}

// InitializationError reports why the query path is disabled, or nil when
// the assistant is ready.
func (a *Assistant) InitializationError() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.llm == nil {
		if a.initErr != nil {
			return a.initErr
		}
		return fmt.Errorf("LLM not initialized")
	}
	return nil
}

// Stats returns the current knowledge-base size and readiness.
func (a *Assistant) Stats(ctx context.Context) (Stats, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	count, err := a.store.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count documents: %w", err)
	}
	return Stats{CollectionCount: count, Initialized: a.llm != nil}, nil
}

// ClearKnowledgeBase removes every stored chunk.
func (a *Assistant) ClearKnowledgeBase(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear knowledge base: %w", err)
	}
	a.log.Info("knowledge base cleared")
	return nil
}
