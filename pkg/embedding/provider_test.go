package embedding

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiProvider_Generate(t *testing.T) {
	var gotPath, gotKey string
	var gotReq EmbeddingRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"embedding":{"values":[0.1,0.2,0.3]}}`))
	}))
	defer server.Close()

	p := NewGeminiProvider("test_google_api_key", "text-embedding-004")
	p.BaseURL = server.URL

	res, err := p.Generate(context.Background(), "wireless headphones", TaskRetrievalQuery)
	require.NoError(t, err)

	assert.Equal(t, []float32{0.1, 0.2, 0.3}, res.Embedding.Values)
	assert.Equal(t, "/models/text-embedding-004:embedContent", gotPath)
	assert.Equal(t, "test_google_api_key", gotKey)
	assert.Equal(t, "models/text-embedding-004", gotReq.Model)
	assert.Equal(t, TaskRetrievalQuery, gotReq.TaskType)
	assert.Equal(t, "wireless headphones", gotReq.Content.Parts[0].Text)
}

func TestGeminiProvider_KeepsQualifiedModelName(t *testing.T) {
	p := NewGeminiProvider("k", "models/custom-embedding-model")
	assert.Equal(t, "models/custom-embedding-model", p.Model)
}

func TestGeminiProvider_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer server.Close()

	p := NewGeminiProvider("bad", "")
	p.BaseURL = server.URL

	_, err := p.Generate(context.Background(), "q", TaskRetrievalQuery)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestOllamaProvider_NormalizesVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)
		_, _ = w.Write([]byte(`{"embedding":[3,4]}`))
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL, "")
	res, err := p.Generate(context.Background(), "hello", TaskRetrievalDocument)
	require.NoError(t, err)

	require.Len(t, res.Embedding.Values, 2)
	assert.InDelta(t, 0.6, res.Embedding.Values[0], 1e-6)
	assert.InDelta(t, 0.8, res.Embedding.Values[1], 1e-6)
}

func TestNormalizeVector(t *testing.T) {
	zero := []float32{0, 0, 0}
	assert.Equal(t, zero, normalizeVector(zero))

	v := normalizeVector([]float32{1, 2, 2})
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-6)
}
