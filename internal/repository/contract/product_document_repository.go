package contract

import (
	"context"

	"product-chatbot-be/internal/entity"
)

// ProductDocumentRepository is the vector store holding indexed product documents.
type ProductDocumentRepository interface {
	// EnsureCollection creates the backing collection or table when it does not exist yet.
	EnsureCollection(ctx context.Context) error
	CreateBulk(ctx context.Context, docs []*entity.ProductDocument) error
	// SearchSimilar returns at most limit documents ordered by similarity, most similar first.
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*entity.ProductDocument, error)
	Count(ctx context.Context) (int64, error)
}
