// Package dataset reads the product review dataset and renders its rows into
// indexable documents.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"product-chatbot-be/internal/entity"

	"github.com/google/uuid"
)

var RequiredColumns = []string{"product_id", "product_title", "rating", "summary", "review"}

var ErrSourceNotFound = fmt.Errorf("product data source not found: %w", fs.ErrNotExist)

type ValidationError struct {
	Row     int // 1-based data row, 0 for header problems
	Message string
}

func (e *ValidationError) Error() string {
	if e.Row == 0 {
		return e.Message
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

func missingColumnsError() *ValidationError {
	return &ValidationError{Message: "CSV must contain columns: " + strings.Join(RequiredColumns, ", ")}
}

// LoadProductCSV reads every row of the CSV at path. The file must have a
// header naming all RequiredColumns; other columns are ignored.
func LoadProductCSV(path string) ([]entity.ProductRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("open product data: %w", err)
	}
	defer f.Close()

	return ReadProductCSV(f)
}

func ReadProductCSV(r io.Reader) ([]entity.ProductRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, missingColumnsError()
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, missingColumnsError()
		}
	}

	var records []entity.ProductRecord
	for row := 1; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", row, err)
		}

		get := func(col string) string {
			i := index[col]
			if i >= len(fields) {
				return ""
			}
			return fields[i]
		}

		label := strings.TrimSpace(get("rating"))
		rating, err := strconv.ParseFloat(label, 64)
		if err != nil {
			return nil, &ValidationError{Row: row, Message: fmt.Sprintf("rating %q is not a number", label)}
		}

		records = append(records, entity.ProductRecord{
			ProductId:    get("product_id"),
			ProductTitle: get("product_title"),
			Rating:       rating,
			RatingLabel:  label,
			Summary:      get("summary"),
			Review:       get("review"),
		})
	}
	return records, nil
}

// Content is the text that gets embedded and returned as retrieval context.
func Content(rec entity.ProductRecord) string {
	return fmt.Sprintf("%s - Rating: %s - %s - %s", rec.ProductTitle, rec.RatingLabel, rec.Summary, rec.Review)
}

// NewDocument renders rec as an unembedded document with a fresh id.
func NewDocument(rec entity.ProductRecord) *entity.ProductDocument {
	return &entity.ProductDocument{
		Id:      uuid.New(),
		Content: Content(rec),
		Metadata: entity.ProductMetadata{
			ProductId: rec.ProductId,
			Rating:    rec.Rating,
		},
	}
}
