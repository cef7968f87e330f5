package repositories

import (
	"github.com/lib/pq"
	"gorm.io/gorm/clause"
)

func pqArray(values []string) pq.StringArray {
	return pq.StringArray(values)
}

func lockForUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return page, pageSize
}
