package factory

import (
	"fmt"

	"product-chatbot-be/pkg/embedding"
	"product-chatbot-be/pkg/llm"
	"product-chatbot-be/pkg/llm/gemini"
	"product-chatbot-be/pkg/llm/ollama"
)

const (
	ProviderGoogle = "google"
	ProviderOllama = "ollama"
)

func NewLLMProvider(providerType, modelName, apiKey, ollamaBaseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case ProviderGoogle:
		return gemini.NewGeminiProvider(apiKey, modelName), nil
	case ProviderOllama:
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}

func NewEmbeddingProvider(providerType, modelName, apiKey, ollamaBaseURL string) (embedding.EmbeddingProvider, error) {
	switch providerType {
	case ProviderGoogle:
		return embedding.NewGeminiProvider(apiKey, modelName), nil
	case ProviderOllama:
		return embedding.NewOllamaProvider(ollamaBaseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", providerType)
	}
}
