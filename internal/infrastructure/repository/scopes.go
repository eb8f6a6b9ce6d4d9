package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// businessScope filters a query to the given businesses. An empty slice
// matches nothing so a user without businesses never sees foreign rows.
func businessScope(businessIDs []uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(businessIDs) == 0 {
			return db.Where("1 = 0")
		}
		return db.Where("business_id IN ?", businessIDs)
	}
}
