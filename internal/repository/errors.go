// Package repository provides data access for the application on top of gorm and Redis.
package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row matches, including rows owned by another user
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique constraint is violated
	ErrDuplicate = errors.New("record already exists")

	// ErrConflict is returned when a conditional update matched no row because the row changed
	ErrConflict = errors.New("record changed concurrently")
)

// translate maps gorm errors onto the repository sentinels, keeping the cause in the chain
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	default:
		return err
	}
}

// affected turns a write that touched no row into ErrNotFound
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// since applies an optional lower time bound; the zero time means unbounded
func since(column string, from time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from.IsZero() {
			return db
		}
		return db.Where(column+" >= ?", from)
	}
}
