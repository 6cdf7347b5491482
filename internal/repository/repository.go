package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// conn returns tx when the caller is inside a transaction, db otherwise.
func conn(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

// forUpdate adds SELECT ... FOR UPDATE when running inside a transaction.
func forUpdate(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

func paginate(page, limit int) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		return q.Offset((page - 1) * limit).Limit(limit)
	}
}
