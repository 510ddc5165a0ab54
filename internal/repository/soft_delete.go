package repository

import (
	"errors"

	"gorm.io/gorm"
)

// SoftDelete says whether rows with a deleted_at timestamp are visible to a lookup.
// Every query against a soft-deletable table takes one explicitly.
type SoftDelete int

const (
	ExcludeDeleted SoftDelete = iota
	IncludeDeleted
)

// Scope filters on column, which may be table-qualified.
func (s SoftDelete) Scope(column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if s == IncludeDeleted {
			return db
		}
		return db.Where(column + " IS NULL")
	}
}

// ErrStaleState is returned when a conditional status update matched no row.
var ErrStaleState = errors.New("assessment state changed concurrently")

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
