package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProductRecord is one row of the product review dataset.
type ProductRecord struct {
	ProductId    string
	ProductTitle string
	Rating       float64
	RatingLabel  string
	Summary      string
	Review       string
}

type ProductMetadata struct {
	ProductId string  `json:"product_id"`
	Rating    float64 `json:"rating"`
}

// ProductDocument is the indexed form of a ProductRecord.
type ProductDocument struct {
	Id             uuid.UUID
	Content        string
	Metadata       ProductMetadata
	EmbeddingValue []float32
	Similarity     float64 // set on search results only
	CreatedAt      time.Time
}
