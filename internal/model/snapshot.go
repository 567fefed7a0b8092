package model

import (
	"time"

	"gorm.io/gorm"
)

// PortfolioSnapshot is an immutable point in time valuation used for charts
type PortfolioSnapshot struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID     string    `gorm:"type:varchar(36);not null;index:idx_snapshots_user_timestamp" json:"userId"`
	Timestamp  time.Time `gorm:"not null;index:idx_snapshots_user_timestamp" json:"timestamp"`
	TotalValue float64   `gorm:"not null" json:"totalValue"`
	Profit     float64   `gorm:"not null;default:0" json:"profit"`
}

// BeforeCreate assigns the id and stamps the snapshot
func (s *PortfolioSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = newID()
	}
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now().UTC()
	}
	return nil
}
