package model

import (
	"github.com/google/uuid"
)

// newID returns the primary key used for every entity
func newID() string {
	return uuid.NewString()
}

// All returns every persisted entity in dependency order, for migrations
func All() []interface{} {
	return []interface{}{
		&User{},
		&Bot{},
		&Wallet{},
		&Asset{},
		&Trade{},
		&Alert{},
		&PortfolioSnapshot{},
	}
}
