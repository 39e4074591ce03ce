package vectorstore

import (
	"context"
	"fmt"

	"docmuse/internal/config"
	"docmuse/internal/rag/interfaces"
	"docmuse/pkg/logger"
)

// Open returns the VectorStore selected by the store configuration. The local
// backend defers all disk access to first use; the Milvus backend connects
// immediately.
func Open(ctx context.Context, cfg config.StoreConfig, log *logger.Logger) (interfaces.VectorStore, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocalStore(cfg.Path, cfg.CollectionName, log), nil
	case "milvus":
		return NewMilvusStore(ctx, cfg.Milvus.Address, cfg.CollectionName, log)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Backend)
	}
}
