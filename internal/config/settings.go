package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGoogle = "google"
	ProviderOllama = "ollama"

	VectorStoreAstra    = "astra"
	VectorStorePgvector = "pgvector"

	DefaultTopK      = 3
	DefaultDimension = 768
)

// Settings is the static settings document, decoded once at startup.
type Settings struct {
	VectorStore    VectorStoreSettings `yaml:"vector_store" validate:"required"`
	EmbeddingModel ModelSettings       `yaml:"embedding_model" validate:"required"`
	LLM            LLMSettings         `yaml:"llm" validate:"required"`
	Retriever      *RetrieverSettings  `yaml:"retriever"`
}

type VectorStoreSettings struct {
	Provider       string `yaml:"provider" validate:"required,oneof=astra pgvector"`
	CollectionName string `yaml:"collection_name" validate:"required"`
	Dimension      int    `yaml:"dimension" validate:"omitempty,min=1"`
}

type ModelSettings struct {
	Provider  string `yaml:"provider" validate:"required,oneof=google ollama"`
	ModelName string `yaml:"model_name" validate:"required"`
}

// LLMSettings adds optional sampling controls; zero values keep the
// provider's defaults.
type LLMSettings struct {
	ModelSettings `yaml:",inline"`
	Temperature   *float64 `yaml:"temperature" validate:"omitempty,min=0,max=2"`
	MaxTokens     int      `yaml:"max_tokens" validate:"omitempty,min=1"`
}

type RetrieverSettings struct {
	TopK int `yaml:"top_k" validate:"required,min=1"`
}

var validate = validator.New()

// LoadSettings reads and validates the settings document at path.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	return ParseSettings(data)
}

// ParseSettings decodes a settings document. Unknown keys and missing required
// keys are both rejected.
func ParseSettings(data []byte) (*Settings, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Settings
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("settings document is empty")
		}
		return nil, fmt.Errorf("decode settings: %w", err)
	}

	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	if s.VectorStore.Dimension == 0 {
		s.VectorStore.Dimension = DefaultDimension
	}
	return &s, nil
}

// TopK is the configured retriever top-k, or DefaultTopK when the retriever
// section is absent.
func (s *Settings) TopK() int {
	if s.Retriever == nil {
		return DefaultTopK
	}
	return s.Retriever.TopK
}

func (s *Settings) UsesProvider(provider string) bool {
	return s.EmbeddingModel.Provider == provider || s.LLM.Provider == provider
}

func (v VectorStoreSettings) RequiredEnv() []string {
	switch v.Provider {
	case VectorStorePgvector:
		return []string{EnvDBConnectionString}
	default:
		return []string{EnvAstraEndpoint, EnvAstraToken, EnvAstraKeyspace}
	}
}
