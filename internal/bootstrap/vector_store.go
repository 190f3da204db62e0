package bootstrap

import (
	"fmt"

	"product-chatbot-be/internal/config"
	"product-chatbot-be/internal/model"
	"product-chatbot-be/internal/repository/astra"
	"product-chatbot-be/internal/repository/contract"
	"product-chatbot-be/internal/repository/implementation"
	"product-chatbot-be/pkg/database"
)

// NewVectorStore connects to the configured vector store. Astra needs no
// connection up front; pgvector opens its pool here.
func NewVectorStore(cfg *config.Config) (contract.ProductDocumentRepository, error) {
	vs := cfg.Settings.VectorStore
	if err := cfg.Keys.Require(vs.RequiredEnv()...); err != nil {
		return nil, err
	}

	switch vs.Provider {
	case config.VectorStoreAstra:
		return astra.NewProductDocumentRepository(astra.Config{
			Endpoint:   cfg.Keys.AstraAPIEndpoint,
			Token:      cfg.Keys.AstraApplicationToken,
			Keyspace:   cfg.Keys.AstraKeyspace,
			Collection: vs.CollectionName,
			Dimension:  vs.Dimension,
		}), nil
	case config.VectorStorePgvector:
		if vs.Dimension != model.EmbeddingDimension {
			return nil, fmt.Errorf("pgvector store needs vector_store.dimension %d, got %d", model.EmbeddingDimension, vs.Dimension)
		}
		db, err := database.NewGormDBFromDSN(cfg.Keys.DBConnectionString, !cfg.IsProduction())
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		return implementation.NewProductDocumentRepository(db, vs.CollectionName), nil
	default:
		return nil, fmt.Errorf("unsupported vector store: %s", vs.Provider)
	}
}
