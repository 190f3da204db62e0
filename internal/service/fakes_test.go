package service

import (
	"context"
	"sync"

	"product-chatbot-be/internal/entity"
	"product-chatbot-be/pkg/embedding"
	"product-chatbot-be/pkg/llm"
)

type fakeEmbedder struct {
	mu        sync.Mutex
	calls     []string
	taskTypes []string
	failOn    int // 1-based call number that fails, 0 never
	err       error
}

func (f *fakeEmbedder) Generate(_ context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, text)
	f.taskTypes = append(f.taskTypes, taskType)
	if f.err != nil && (f.failOn == 0 || f.failOn == len(f.calls)) {
		return nil, f.err
	}
	res := &embedding.EmbeddingResponse{}
	res.Embedding.Values = []float32{float32(len(f.calls)), 0.5}
	return res, nil
}

type fakeStore struct {
	mu          sync.Mutex
	written     []*entity.ProductDocument
	results     []*entity.ProductDocument
	ensureCalls int
	bulkCalls   int
	lastLimit   int
	ensureErr   error
	bulkErr     error
	searchErr   error
}

func (f *fakeStore) EnsureCollection(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureCalls++
	return f.ensureErr
}

func (f *fakeStore) CreateBulk(_ context.Context, docs []*entity.ProductDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bulkCalls++
	if f.bulkErr != nil {
		return f.bulkErr
	}
	f.written = append(f.written, docs...)
	return nil
}

func (f *fakeStore) SearchSimilar(_ context.Context, _ []float32, limit int) ([]*entity.ProductDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results, nil
}

func (f *fakeStore) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.written)), nil
}

type fakeGenerator struct {
	prompts []string
	options *llm.Options
	reply   string
	err     error
}

func (f *fakeGenerator) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.Generate(ctx, history[len(history)-1].Content, opts...)
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.options = llm.Apply(llm.Options{}, opts...)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}
