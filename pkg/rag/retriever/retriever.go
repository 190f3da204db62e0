// Package retriever finds the product documents most similar to a question.
package retriever

import (
	"context"
	"errors"
	"sync/atomic"

	"product-chatbot-be/internal/entity"
	"product-chatbot-be/internal/repository/contract"
	"product-chatbot-be/pkg/embedding"
	"product-chatbot-be/pkg/rag"
)

const DefaultTopK = 3

type Retriever struct {
	store    contract.ProductDocumentRepository
	embedder embedding.EmbeddingProvider
	topK     int
}

func New(store contract.ProductDocumentRepository, embedder embedding.EmbeddingProvider, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{store: store, embedder: embedder, topK: topK}
}

func (r *Retriever) TopK() int {
	return r.topK
}

// Invoke embeds query as a retrieval query and returns at most TopK documents,
// most similar first. An empty result is not an error.
func (r *Retriever) Invoke(ctx context.Context, query string) ([]*entity.ProductDocument, error) {
	res, err := r.embedder.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, rag.NewPipelineError(rag.FailureProvider, rag.StageEmbed, err)
	}

	docs, err := r.store.SearchSimilar(ctx, res.Embedding.Values, r.topK)
	if err != nil {
		return nil, rag.NewPipelineError(rag.FailureProvider, rag.StageSearch, err)
	}
	if len(docs) > r.topK {
		docs = docs[:r.topK]
	}
	return docs, nil
}

type Loader func(ctx context.Context) (*Retriever, error)

// Lazy builds a Retriever on first use and memoizes it. A failed build is not
// cached, so the next call tries again.
type Lazy struct {
	loader  Loader
	current atomic.Pointer[Retriever]
}

func NewLazy(loader Loader) *Lazy {
	return &Lazy{loader: loader}
}

func (l *Lazy) Get(ctx context.Context) (*Retriever, error) {
	if r := l.current.Load(); r != nil {
		return r, nil
	}

	r, err := l.loader(ctx)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errors.New("retriever loader returned nil")
	}

	// Concurrent first callers may both build; the first one stored wins.
	if !l.current.CompareAndSwap(nil, r) {
		return l.current.Load(), nil
	}
	return r, nil
}
