package bootstrap

import (
	"context"

	"product-chatbot-be/internal/config"
	"product-chatbot-be/internal/controller"
	"product-chatbot-be/internal/pkg/logger"
	"product-chatbot-be/internal/service"
	"product-chatbot-be/pkg/rag/retriever"
)

type Container struct {
	Logger logger.ILogger

	ChatbotService    service.IChatbotService
	ChatbotController controller.IChatbotController
}

// NewContainer checks credentials and builds the model providers up front.
// The vector store connection is deferred to the first question.
func NewContainer(cfg *config.Config, log logger.ILogger) (*Container, error) {
	if err := cfg.Keys.Require(cfg.RequiredEnv()...); err != nil {
		return nil, err
	}

	models, err := NewModelLoader(cfg)
	if err != nil {
		return nil, err
	}

	topK := cfg.Settings.TopK()
	lazyRetriever := retriever.NewLazy(func(ctx context.Context) (*retriever.Retriever, error) {
		store, err := NewVectorStore(cfg)
		if err != nil {
			return nil, err
		}
		log.Info("BOOTSTRAP", "Retriever ready", map[string]interface{}{
			"vector_store": cfg.Settings.VectorStore.Provider,
			"collection":   cfg.Settings.VectorStore.CollectionName,
			"top_k":        topK,
		})
		return retriever.New(store, models.Embedder(), topK), nil
	})

	chatbotService := service.NewChatbotService(lazyRetriever, models.Generator(), log, models.GenerationOptions()...)

	return &Container{
		Logger:            log,
		ChatbotService:    chatbotService,
		ChatbotController: controller.NewChatbotController(chatbotService, cfg.App.FrontendDir),
	}, nil
}
