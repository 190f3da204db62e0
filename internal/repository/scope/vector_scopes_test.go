package scope

import (
	"strings"
	"testing"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=localhost user=test dbname=test sslmode=disable"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func TestNearestByCosine(t *testing.T) {
	db := dryRunDB(t)
	v := pgvector.NewVector([]float32{0.1, 0.2})

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var out []map[string]interface{}
		return tx.Table("product_documents").
			Scopes(NearestByCosine("embedding_value", v), Limit(3)).
			Find(&out)
	})

	assert.Contains(t, sql, "1 - (embedding_value <=> '[0.1,0.2]') AS similarity")
	assert.Contains(t, sql, "ORDER BY embedding_value <=> '[0.1,0.2]'")
	assert.Contains(t, sql, "LIMIT 3")
	assert.Less(t, strings.Index(sql, "ORDER BY"), strings.Index(sql, "LIMIT"))
}
