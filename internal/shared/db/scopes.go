package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OwnedBy scopes a query to rows belonging to userID. Every user-facing
// query goes through it.
func OwnedBy(userID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// ForUpdate adds a row lock to the query on dialects that support it.
// SQLite serializes writers itself, so the clause is skipped there.
func ForUpdate() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if db.Dialector != nil && db.Dialector.Name() == "sqlite" {
			return db
		}
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
}

// Paginate applies offset/limit for a 1-based page.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if pageSize < 1 {
			return db
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
