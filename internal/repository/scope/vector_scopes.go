package scope

import (
	"fmt"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NearestByCosine selects every column plus a "similarity" column (1 - cosine
// distance) and orders rows closest first.
func NearestByCosine(column string, v pgvector.Vector) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		// Order drops bare clause.Expr values, so the distance goes in an OrderBy.
		return db.
			Select(fmt.Sprintf("*, 1 - (%s <=> ?) AS similarity", column), v).
			Order(clause.OrderBy{Expression: clause.Expr{
				SQL:  fmt.Sprintf("%s <=> ?", column),
				Vars: []interface{}{v},
			}})
	}
}

func Limit(n int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(n)
	}
}
