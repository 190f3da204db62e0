package bootstrap

import (
	"fmt"

	"product-chatbot-be/internal/config"
	"product-chatbot-be/pkg/embedding"
	"product-chatbot-be/pkg/llm"
	"product-chatbot-be/pkg/llm/factory"
)

// ModelLoader builds the embedding and generation providers named in the
// settings document.
type ModelLoader struct {
	embedder  embedding.EmbeddingProvider
	generator llm.LLMProvider
	genOpts   []llm.Option
}

// NewModelLoader fails with *config.MissingEnvError before building anything
// when a configured provider needs a credential that is not set.
func NewModelLoader(cfg *config.Config) (*ModelLoader, error) {
	s := cfg.Settings
	if s.UsesProvider(config.ProviderGoogle) {
		if err := cfg.Keys.Require(config.EnvGoogleAPIKey); err != nil {
			return nil, err
		}
	}

	embedder, err := factory.NewEmbeddingProvider(
		s.EmbeddingModel.Provider,
		s.EmbeddingModel.ModelName,
		cfg.Keys.GoogleAPIKey,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		return nil, fmt.Errorf("embedding model: %w", err)
	}

	generator, err := factory.NewLLMProvider(
		s.LLM.Provider,
		s.LLM.ModelName,
		cfg.Keys.GoogleAPIKey,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}

	var genOpts []llm.Option
	if s.LLM.Temperature != nil {
		genOpts = append(genOpts, llm.WithTemperature(*s.LLM.Temperature))
	}
	if s.LLM.MaxTokens > 0 {
		genOpts = append(genOpts, llm.WithMaxTokens(s.LLM.MaxTokens))
	}

	return &ModelLoader{embedder: embedder, generator: generator, genOpts: genOpts}, nil
}

func (m *ModelLoader) Embedder() embedding.EmbeddingProvider {
	return m.embedder
}

func (m *ModelLoader) Generator() llm.LLMProvider {
	return m.generator
}

// GenerationOptions are the sampling controls from the llm settings section.
func (m *ModelLoader) GenerationOptions() []llm.Option {
	return m.genOpts
}
