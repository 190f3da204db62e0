package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"product-chatbot-be/internal/config"
	"product-chatbot-be/internal/constant"
	"product-chatbot-be/internal/entity"
	"product-chatbot-be/internal/pkg/logger"
	"product-chatbot-be/pkg/llm"
	"product-chatbot-be/pkg/rag"
	"product-chatbot-be/pkg/rag/retriever"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func laptopDocs() []*entity.ProductDocument {
	return []*entity.ProductDocument{
		{Content: "Budget Laptop 8GB - Rating: 4.1 - Good value - Handles office work fine"},
		{Content: "Gaming Laptop 16GB RAM - Rating: 4.8 - Excellent performance - Perfect for gaming"},
	}
}

func newChatbot(store *fakeStore, emb *fakeEmbedder, gen *fakeGenerator, topK int) IChatbotService {
	lazy := retriever.NewLazy(func(context.Context) (*retriever.Retriever, error) {
		return retriever.New(store, emb, topK), nil
	})
	return NewChatbotService(lazy, gen, logger.NewNopLogger())
}

func TestAnswer_NoResultsSkipsGeneration(t *testing.T) {
	gen := &fakeGenerator{reply: "should not be used"}
	svc := newChatbot(&fakeStore{}, &fakeEmbedder{}, gen, 3)

	reply := svc.Answer(context.Background(), "Do you sell kettles?")

	assert.Equal(t, constant.NoResultsMessage, reply.Response)
	assert.Equal(t, constant.OutcomeNoResults, reply.Outcome)
	assert.Empty(t, gen.prompts)
}

func TestAnswer_ReturnsGenerationVerbatim(t *testing.T) {
	store := &fakeStore{results: laptopDocs()}
	gen := &fakeGenerator{reply: "  The Budget Laptop 8GB is a solid pick.\n"}
	svc := newChatbot(store, &fakeEmbedder{}, gen, 3)

	question := "Can you suggest good budget laptops?"
	reply := svc.Answer(context.Background(), question)

	assert.Equal(t, "  The Budget Laptop 8GB is a solid pick.\n", reply.Response)
	assert.Equal(t, constant.OutcomeAnswered, reply.Outcome)

	require.Len(t, gen.prompts, 1)
	p := gen.prompts[0]
	assert.Contains(t, p, laptopDocs()[0].Content+"\n\n"+laptopDocs()[1].Content)
	assert.Contains(t, p, question)
}

func TestAnswer_GenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("deadline exceeded")}
	svc := newChatbot(&fakeStore{results: laptopDocs()}, &fakeEmbedder{}, gen, 3)

	reply := svc.Answer(context.Background(), "laptops")

	assert.True(t, strings.HasPrefix(reply.Response, "I'm experiencing technical difficulties"))
	assert.Equal(t, "I'm experiencing technical difficulties. Error: deadline exceeded", reply.Response)
	assert.Equal(t, constant.OutcomeProviderError, reply.Outcome)
}

func TestAnswer_EmbeddingFailure(t *testing.T) {
	gen := &fakeGenerator{}
	svc := newChatbot(&fakeStore{results: laptopDocs()}, &fakeEmbedder{err: errors.New("invalid api key")}, gen, 3)

	reply := svc.Answer(context.Background(), "laptops")

	assert.Equal(t, constant.TechnicalDifficultiesPrefix+"invalid api key", reply.Response)
	assert.Empty(t, gen.prompts)
}

func TestAsk_TagsFailures(t *testing.T) {
	svc := newChatbot(&fakeStore{}, &fakeEmbedder{}, &fakeGenerator{}, 3)
	_, err := svc.Ask(context.Background(), "x")
	var pe *rag.PipelineError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, rag.FailureNoResults, pe.Kind)

	svc = newChatbot(&fakeStore{searchErr: errors.New("timeout")}, &fakeEmbedder{}, &fakeGenerator{}, 3)
	_, err = svc.Ask(context.Background(), "x")
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, rag.FailureProvider, pe.Kind)
	assert.Equal(t, rag.StageSearch, pe.Stage)

	svc = newChatbot(&fakeStore{results: laptopDocs()}, &fakeEmbedder{}, &fakeGenerator{err: errors.New("boom")}, 3)
	_, err = svc.Ask(context.Background(), "x")
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, rag.StageGenerate, pe.Stage)
}

func TestAnswer_ConfiguredTopKReachesSearch(t *testing.T) {
	store := &fakeStore{results: laptopDocs()}
	svc := newChatbot(store, &fakeEmbedder{}, &fakeGenerator{reply: "ok"}, 7)

	svc.Answer(context.Background(), "laptops")
	assert.Equal(t, 7, store.lastLimit)
}

func TestAnswer_RetriesRetrieverInitialisation(t *testing.T) {
	var builds int
	store := &fakeStore{results: laptopDocs()}
	lazy := retriever.NewLazy(func(context.Context) (*retriever.Retriever, error) {
		builds++
		if builds == 1 {
			return nil, &config.MissingEnvError{Names: []string{config.EnvAstraToken}}
		}
		return retriever.New(store, &fakeEmbedder{}, 3), nil
	})
	svc := NewChatbotService(lazy, &fakeGenerator{reply: "ok"}, logger.NewNopLogger())

	first := svc.Answer(context.Background(), "laptops")
	assert.Equal(t, constant.OutcomeConfigurationError, first.Outcome)
	assert.Contains(t, first.Response, "ASTRA_DB_APPLICATION_TOKEN")

	second := svc.Answer(context.Background(), "laptops")
	assert.Equal(t, constant.OutcomeAnswered, second.Outcome)
	assert.Equal(t, "ok", second.Response)

	svc.Answer(context.Background(), "laptops")
	assert.Equal(t, 2, builds)
}

func TestAsk_PassesGenerationOptions(t *testing.T) {
	store := &fakeStore{results: laptopDocs()}
	lazy := retriever.NewLazy(func(context.Context) (*retriever.Retriever, error) {
		return retriever.New(store, &fakeEmbedder{}, 3), nil
	})
	gen := &fakeGenerator{reply: "ok"}
	svc := NewChatbotService(lazy, gen, logger.NewNopLogger(), llm.WithTemperature(0.3), llm.WithMaxTokens(512))

	_, err := svc.Ask(context.Background(), "laptops")
	require.NoError(t, err)

	require.NotNil(t, gen.options)
	assert.InDelta(t, 0.3, gen.options.Temperature, 1e-9)
	assert.Equal(t, 512, gen.options.MaxTokens)
}
