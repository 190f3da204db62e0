package implementation

import (
	"context"
	"fmt"

	"product-chatbot-be/internal/entity"
	"product-chatbot-be/internal/mapper"
	"product-chatbot-be/internal/model"
	"product-chatbot-be/internal/repository/contract"
	"product-chatbot-be/internal/repository/scope"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const bulkInsertBatchSize = 100

type ProductDocumentRepositoryImpl struct {
	db     *gorm.DB
	table  string
	mapper *mapper.ProductDocumentMapper
}

// NewProductDocumentRepository stores documents in the named table, one table
// per collection. An empty name falls back to the model's table.
func NewProductDocumentRepository(db *gorm.DB, table string) contract.ProductDocumentRepository {
	if table == "" {
		table = model.ProductDocument{}.TableName()
	}
	return &ProductDocumentRepositoryImpl{
		db:     db,
		table:  table,
		mapper: mapper.NewProductDocumentMapper(),
	}
}

func (r *ProductDocumentRepositoryImpl) EnsureCollection(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("enable pgvector extension: %w", err)
	}
	if err := db.Table(r.table).AutoMigrate(&model.ProductDocument{}); err != nil {
		return fmt.Errorf("migrate %s: %w", r.table, err)
	}
	// index names are schema-wide, so they carry the table name
	return db.Exec("CREATE INDEX IF NOT EXISTS ? ON ? (product_id)",
		clause.Table{Name: "idx_" + r.table + "_product_id"},
		clause.Table{Name: r.table},
	).Error
}

// CreateBulk inserts all documents in a single transaction.
func (r *ProductDocumentRepositoryImpl) CreateBulk(ctx context.Context, docs []*entity.ProductDocument) error {
	if len(docs) == 0 {
		return nil
	}

	models, err := r.mapper.ToModels(docs)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Table(r.table).CreateInBatches(models, bulkInsertBatchSize).Error
	})
	if err != nil {
		return err
	}

	for i, m := range models {
		*docs[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

// SearchSimilar orders by cosine distance; similarity is reported as 1 - distance.
func (r *ProductDocumentRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*entity.ProductDocument, error) {
	if limit <= 0 {
		limit = 3
	}

	type result struct {
		model.ProductDocument
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table(r.table).
		Scopes(scope.NearestByCosine("embedding_value", queryVector), scope.Limit(limit)).
		Find(&results).Error
	if err != nil {
		return nil, err
	}

	docs := make([]*entity.ProductDocument, len(results))
	for i := range results {
		doc := r.mapper.ToEntity(&results[i].ProductDocument)
		doc.Similarity = results[i].Similarity
		docs[i] = doc
	}
	return docs, nil
}

func (r *ProductDocumentRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table(r.table).Count(&count).Error
	return count, err
}
