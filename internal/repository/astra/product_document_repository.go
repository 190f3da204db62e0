// Package astra stores product documents in an Astra DB vector collection
// through the JSON Data API.
package astra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"product-chatbot-be/internal/entity"
	"product-chatbot-be/internal/repository/contract"
)

// The Data API accepts at most 20 documents per insertMany call.
const insertManyPageSize = 20

type Config struct {
	Endpoint   string
	Token      string
	Keyspace   string
	Collection string
	Dimension  int
	Timeout    time.Duration
}

type ProductDocumentRepository struct {
	cfg    Config
	client *http.Client
}

func NewProductDocumentRepository(cfg Config) contract.ProductDocumentRepository {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	return &ProductDocumentRepository{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type astraDocument struct {
	Id         string                 `json:"_id"`
	Content    string                 `json:"content"`
	Metadata   entity.ProductMetadata `json:"metadata"`
	Vector     []float32              `json:"$vector,omitempty"`
	Similarity float64                `json:"$similarity,omitempty"`
}

type astraError struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode,omitempty"`
}

type astraResponse struct {
	Status struct {
		Ok          int      `json:"ok"`
		Count       int64    `json:"count"`
		InsertedIds []string `json:"insertedIds"`
	} `json:"status"`
	Data struct {
		Documents []astraDocument `json:"documents"`
	} `json:"data"`
	Errors []astraError `json:"errors"`
}

func (r *ProductDocumentRepository) EnsureCollection(ctx context.Context) error {
	body := map[string]any{
		"createCollection": map[string]any{
			"name": r.cfg.Collection,
			"options": map[string]any{
				"vector": map[string]any{
					"dimension": r.cfg.Dimension,
					"metric":    "cosine",
				},
			},
		},
	}
	_, err := r.post(ctx, r.keyspaceURL(), body)
	return err
}

func (r *ProductDocumentRepository) CreateBulk(ctx context.Context, docs []*entity.ProductDocument) error {
	for start := 0; start < len(docs); start += insertManyPageSize {
		end := start + insertManyPageSize
		if end > len(docs) {
			end = len(docs)
		}

		page := make([]astraDocument, 0, end-start)
		for _, d := range docs[start:end] {
			page = append(page, astraDocument{
				Id:       d.Id.String(),
				Content:  d.Content,
				Metadata: d.Metadata,
				Vector:   d.EmbeddingValue,
			})
		}

		body := map[string]any{
			"insertMany": map[string]any{
				"documents": page,
				"options":   map[string]any{"ordered": false},
			},
		}
		res, err := r.post(ctx, r.collectionURL(), body)
		if err != nil {
			return fmt.Errorf("insert documents %d-%d: %w", start, end-1, err)
		}
		if len(res.Status.InsertedIds) != len(page) {
			return fmt.Errorf("insert documents %d-%d: astra inserted %d of %d", start, end-1, len(res.Status.InsertedIds), len(page))
		}
	}
	return nil
}

func (r *ProductDocumentRepository) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*entity.ProductDocument, error) {
	if limit <= 0 {
		limit = 3
	}
	body := map[string]any{
		"find": map[string]any{
			"sort":       map[string]any{"$vector": embedding},
			"projection": map[string]any{"$vector": 0},
			"options": map[string]any{
				"limit":             limit,
				"includeSimilarity": true,
			},
		},
	}
	res, err := r.post(ctx, r.collectionURL(), body)
	if err != nil {
		return nil, err
	}

	docs := make([]*entity.ProductDocument, 0, len(res.Data.Documents))
	for _, d := range res.Data.Documents {
		doc := &entity.ProductDocument{
			Content:    d.Content,
			Metadata:   d.Metadata,
			Similarity: d.Similarity,
		}
		// Ids written by other loaders are not always UUIDs; keep the zero value then.
		_ = doc.Id.UnmarshalText([]byte(d.Id))
		docs = append(docs, doc)
	}
	return docs, nil
}

func (r *ProductDocumentRepository) Count(ctx context.Context) (int64, error) {
	body := map[string]any{"countDocuments": map[string]any{}}
	res, err := r.post(ctx, r.collectionURL(), body)
	if err != nil {
		return 0, err
	}
	return res.Status.Count, nil
}

func (r *ProductDocumentRepository) keyspaceURL() string {
	return fmt.Sprintf("%s/api/json/v1/%s", r.cfg.Endpoint, r.cfg.Keyspace)
}

func (r *ProductDocumentRepository) collectionURL() string {
	return fmt.Sprintf("%s/%s", r.keyspaceURL(), r.cfg.Collection)
}

func (r *ProductDocumentRepository) post(ctx context.Context, url string, body any) (*astraResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Token", r.cfg.Token)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("astra request failed: %w", err)
	}
	defer resp.Body.Close()

	resBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("astra error: status %d, body: %s", resp.StatusCode, string(resBody))
	}

	var res astraResponse
	if err := json.Unmarshal(resBody, &res); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	// The Data API reports command failures in the body of a 200 response.
	if len(res.Errors) > 0 {
		msgs := make([]string, len(res.Errors))
		for i, e := range res.Errors {
			msgs[i] = e.Message
		}
		return nil, errors.New("astra command failed: " + strings.Join(msgs, "; "))
	}

	return &res, nil
}
