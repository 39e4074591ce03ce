package vectorstore

import (
	"context"
	"fmt"
	"strconv"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"docmuse/internal/rag/interfaces"
	"docmuse/internal/rag/schema"
	"docmuse/pkg/logger"
)

const (
	// Schema fields of the Milvus collection.
	FieldID        = "id"
	FieldText      = "text"
	FieldSource    = "source"
	FieldEmbedding = "embedding"

	maxIDLength     = 128
	maxTextLength   = 8192
	maxSourceLength = 1024
)

// MilvusStore is a VectorStore backed by a Milvus collection. It is the
// optional backend for deployments that outgrow the local file store; the
// collection is created on first Add with the dimensionality of the incoming
// embeddings.
type MilvusStore struct {
	log        *logger.Logger
	client     client.Client
	collection string
}

// NewMilvusStore connects to Milvus and returns a store bound to the given
// collection name.
func NewMilvusStore(ctx context.Context, address, collection string, log *logger.Logger) (*MilvusStore, error) {
	c, err := client.NewClient(ctx, client.Config{Address: address})
	if err != nil {
		return nil, fmt.Errorf("connect to milvus at %s: %w", address, err)
	}
	return &MilvusStore{log: log, client: c, collection: collection}, nil
}

// ensureCollection creates and indexes the collection if it does not exist.
func (s *MilvusStore) ensureCollection(ctx context.Context, dim int) error {
	has, err := s.client.HasCollection(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("check collection %q: %w", s.collection, err)
	}
	if has {
		return nil
	}

	collSchema := entity.NewSchema().
		WithName(s.collection).
		WithDescription("Document chunks with embeddings").
		WithField(entity.NewField().WithName(FieldID).WithDataType(entity.FieldTypeVarChar).WithMaxLength(maxIDLength).WithIsPrimaryKey(true)).
		WithField(entity.NewField().WithName(FieldText).WithDataType(entity.FieldTypeVarChar).WithMaxLength(maxTextLength)).
		WithField(entity.NewField().WithName(FieldSource).WithDataType(entity.FieldTypeVarChar).WithMaxLength(maxSourceLength)).
		WithField(entity.NewField().WithName(FieldEmbedding).WithDataType(entity.FieldTypeFloatVector).WithDim(int64(dim)))

	if err := s.client.CreateCollection(ctx, collSchema, 1); err != nil {
		return fmt.Errorf("create collection %q: %w", s.collection, err)
	}

	idx, err := entity.NewIndexIvfFlat(entity.COSINE, 128)
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}
	if err := s.client.CreateIndex(ctx, s.collection, FieldEmbedding, idx, false); err != nil {
		return fmt.Errorf("create index on %q: %w", s.collection, err)
	}

	s.log.Info(fmt.Sprintf("Created Milvus collection %q (dim %d)", s.collection, dim))
	return nil
}

// Add inserts embedded chunks into the Milvus collection and flushes.
func (s *MilvusStore) Add(ctx context.Context, docs []*schema.Document) error {
	if len(docs) == 0 {
		return nil
	}

	dim := len(docs[0].Embedding)
	if err := s.ensureCollection(ctx, dim); err != nil {
		return err
	}

	ids := make([]string, len(docs))
	texts := make([]string, len(docs))
	sources := make([]string, len(docs))
	embeddings := make([][]float32, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
		texts[i] = doc.Text
		sources[i] = doc.Source()
		embeddings[i] = doc.Embedding
	}

	idCol := entity.NewColumnVarChar(FieldID, ids)
	textCol := entity.NewColumnVarChar(FieldText, texts)
	sourceCol := entity.NewColumnVarChar(FieldSource, sources)
	embeddingCol := entity.NewColumnFloatVector(FieldEmbedding, dim, embeddings)

	s.log.Info(fmt.Sprintf("Inserting %d chunks into Milvus collection %q", len(docs), s.collection))
	if _, err := s.client.Insert(ctx, s.collection, "", idCol, textCol, sourceCol, embeddingCol); err != nil {
		return fmt.Errorf("insert into %q: %w", s.collection, err)
	}
	if err := s.client.Flush(ctx, s.collection, false); err != nil {
		return fmt.Errorf("flush %q: %w", s.collection, err)
	}
	return nil
}

// Search performs a vector similarity search. A missing collection yields an
// empty result, never an error.
func (s *MilvusStore) Search(ctx context.Context, embedding []float32, topK int) ([]schema.RetrievedChunk, error) {
	has, err := s.client.HasCollection(ctx, s.collection)
	if err != nil || !has {
		return []schema.RetrievedChunk{}, nil
	}

	if err := s.client.LoadCollection(ctx, s.collection, false); err != nil {
		s.log.Warn(fmt.Sprintf("Cannot load collection %q: %v", s.collection, err))
		return []schema.RetrievedChunk{}, nil
	}

	searchParams, _ := entity.NewIndexIvfFlatSearchParam(10)
	outputFields := []string{FieldID, FieldText, FieldSource}

	searchResults, err := s.client.Search(
		ctx, s.collection, []string{}, "", outputFields,
		[]entity.Vector{entity.FloatVector(embedding)},
		FieldEmbedding, entity.COSINE, topK, searchParams,
	)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", s.collection, err)
	}

	var results []schema.RetrievedChunk
	for _, res := range searchResults {
		findColumn := func(name string) entity.Column {
			for _, field := range res.Fields {
				if field.Name() == name {
					return field
				}
			}
			return nil
		}

		idCol, ok := findColumn(FieldID).(*entity.ColumnVarChar)
		if !ok {
			s.log.Warn("Search result is missing ID field or has wrong type, skipping.")
			continue
		}
		idData := idCol.Data()

		var textData, sourceData []string
		if textCol, ok := findColumn(FieldText).(*entity.ColumnVarChar); ok {
			textData = textCol.Data()
		}
		if sourceCol, ok := findColumn(FieldSource).(*entity.ColumnVarChar); ok {
			sourceData = sourceCol.Data()
		}

		for i := 0; i < res.ResultCount; i++ {
			doc := &schema.Document{
				ID:       idData[i],
				Metadata: map[string]interface{}{},
			}
			if textData != nil {
				doc.Text = textData[i]
			}
			if sourceData != nil {
				doc.Metadata[schema.MetadataKeySource] = sourceData[i]
			}
			results = append(results, schema.RetrievedChunk{Document: doc, Score: res.Scores[i]})
		}
	}

	return results, nil
}

// Count returns the collection's row count, 0 when the collection does not
// exist.
func (s *MilvusStore) Count(ctx context.Context) (int64, error) {
	has, err := s.client.HasCollection(ctx, s.collection)
	if err != nil {
		return 0, fmt.Errorf("check collection %q: %w", s.collection, err)
	}
	if !has {
		return 0, nil
	}

	stats, err := s.client.GetCollectionStatistics(ctx, s.collection)
	if err != nil {
		return 0, fmt.Errorf("collection statistics for %q: %w", s.collection, err)
	}
	count, err := strconv.ParseInt(stats["row_count"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse row_count for %q: %w", s.collection, err)
	}
	return count, nil
}

// Clear drops the collection. The next Add recreates it.
func (s *MilvusStore) Clear(ctx context.Context) error {
	has, err := s.client.HasCollection(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("check collection %q: %w", s.collection, err)
	}
	if !has {
		return nil
	}
	if err := s.client.DropCollection(ctx, s.collection); err != nil {
		return fmt.Errorf("drop collection %q: %w", s.collection, err)
	}
	s.log.Info(fmt.Sprintf("Dropped Milvus collection %q", s.collection))
	return nil
}

// compile-time check to ensure MilvusStore implements the VectorStore interface
var _ interfaces.VectorStore = (*MilvusStore)(nil)
