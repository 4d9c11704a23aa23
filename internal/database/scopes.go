package database

import (
	"gorm.io/gorm"

	"github.com/bra1695/backend-kanban/internal/utils"
)

// OwnedBy restricts a query to rows created by the given user. Every board
// aggregate read goes through this scope so that "absent" and "not owned"
// are indistinguishable to the caller.
func OwnedBy(ownerID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("created_by = ?", ownerID)
	}
}

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}
