package service

import (
	"context"
	"fmt"
	"time"

	"product-chatbot-be/internal/entity"
	"product-chatbot-be/internal/pkg/logger"
	"product-chatbot-be/internal/repository/contract"
	"product-chatbot-be/pkg/dataset"
	"product-chatbot-be/pkg/embedding"
)

const ingestionModule = "INGESTION"

// ProgressFunc is called after each document is embedded.
type ProgressFunc func(done, total int)

type IngestOption func(*ingestOptions)

type ingestOptions struct {
	progress ProgressFunc
}

func WithProgress(fn ProgressFunc) IngestOption {
	return func(o *ingestOptions) {
		o.progress = fn
	}
}

type IIngestionService interface {
	// Run loads the product CSV at sourcePath, embeds every row and writes the
	// documents to the vector store. It returns the number of documents written.
	Run(ctx context.Context, sourcePath string, opts ...IngestOption) (int, error)
}

type ingestionService struct {
	store    contract.ProductDocumentRepository
	embedder embedding.EmbeddingProvider
	logger   logger.ILogger
}

func NewIngestionService(
	store contract.ProductDocumentRepository,
	embedder embedding.EmbeddingProvider,
	logger logger.ILogger,
) IIngestionService {
	return &ingestionService{
		store:    store,
		embedder: embedder,
		logger:   logger,
	}
}

func (s *ingestionService) Run(ctx context.Context, sourcePath string, opts ...IngestOption) (int, error) {
	options := &ingestOptions{}
	for _, opt := range opts {
		opt(options)
	}
	start := time.Now()

	records, err := dataset.LoadProductCSV(sourcePath)
	if err != nil {
		s.logger.Error(ingestionModule, "Failed to load product data", map[string]interface{}{
			"path":  sourcePath,
			"error": err.Error(),
		})
		return 0, err
	}
	s.logger.Info(ingestionModule, "Loaded product data", map[string]interface{}{
		"path": sourcePath,
		"rows": len(records),
	})

	docs, err := s.embedAll(ctx, records, options.progress)
	if err != nil {
		return 0, err
	}

	if err := s.store.EnsureCollection(ctx); err != nil {
		s.logger.Error(ingestionModule, "Failed to prepare collection", map[string]interface{}{
			"error": err.Error(),
		})
		return 0, fmt.Errorf("ensure collection: %w", err)
	}

	if err := s.store.CreateBulk(ctx, docs); err != nil {
		s.logger.Error(ingestionModule, "Failed to write documents", map[string]interface{}{
			"count": len(docs),
			"error": err.Error(),
		})
		return 0, fmt.Errorf("write documents: %w", err)
	}

	s.logger.Info(ingestionModule, "Ingestion complete", map[string]interface{}{
		"indexed":     len(docs),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return len(docs), nil
}

// embedAll embeds every record before anything is written, so an embedding
// failure leaves the store untouched.
func (s *ingestionService) embedAll(ctx context.Context, records []entity.ProductRecord, progress ProgressFunc) ([]*entity.ProductDocument, error) {
	docs := make([]*entity.ProductDocument, 0, len(records))
	for i, rec := range records {
		doc := dataset.NewDocument(rec)

		res, err := s.embedder.Generate(ctx, doc.Content, embedding.TaskRetrievalDocument)
		if err != nil {
			s.logger.Error(ingestionModule, "Embedding failed", map[string]interface{}{
				"row":        i + 1,
				"product_id": rec.ProductId,
				"error":      err.Error(),
			})
			return nil, fmt.Errorf("embed product %s: %w", rec.ProductId, err)
		}
		doc.EmbeddingValue = res.Embedding.Values
		docs = append(docs, doc)

		if progress != nil {
			progress(i+1, len(records))
		}
	}
	return docs, nil
}
