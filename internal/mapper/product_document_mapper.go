package mapper

import (
	"encoding/json"

	"product-chatbot-be/internal/entity"
	"product-chatbot-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ProductDocumentMapper struct{}

func NewProductDocumentMapper() *ProductDocumentMapper {
	return &ProductDocumentMapper{}
}

func (m *ProductDocumentMapper) ToEntity(d *model.ProductDocument) *entity.ProductDocument {
	if d == nil {
		return nil
	}

	var metadata entity.ProductMetadata
	if len(d.Metadata) > 0 {
		// Rows written by this mapper always hold valid JSON.
		_ = json.Unmarshal(d.Metadata, &metadata)
	}
	if metadata.ProductId == "" {
		metadata.ProductId = d.ProductId
	}

	return &entity.ProductDocument{
		Id:             d.Id,
		Content:        d.Content,
		Metadata:       metadata,
		EmbeddingValue: d.EmbeddingValue.Slice(),
		CreatedAt:      d.CreatedAt,
	}
}

func (m *ProductDocumentMapper) ToModel(e *entity.ProductDocument) (*model.ProductDocument, error) {
	if e == nil {
		return nil, nil
	}

	metadata, err := json.Marshal(e.Metadata)
	if err != nil {
		return nil, err
	}

	return &model.ProductDocument{
		Id:             e.Id,
		Content:        e.Content,
		Metadata:       datatypes.JSON(metadata),
		ProductId:      e.Metadata.ProductId,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		CreatedAt:      e.CreatedAt,
	}, nil
}

func (m *ProductDocumentMapper) ToModels(docs []*entity.ProductDocument) ([]*model.ProductDocument, error) {
	models := make([]*model.ProductDocument, len(docs))
	for i, d := range docs {
		mdl, err := m.ToModel(d)
		if err != nil {
			return nil, err
		}
		models[i] = mdl
	}
	return models, nil
}
