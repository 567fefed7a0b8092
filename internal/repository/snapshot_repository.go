package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"dexboard/backend/internal/model"
)

// SnapshotRepository stores portfolio snapshots. Snapshots are never updated.
type SnapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{
		db: db,
	}
}

// Create records a snapshot
func (r *SnapshotRepository) Create(ctx context.Context, snapshot *model.PortfolioSnapshot) error {
	return translate(r.db.WithContext(ctx).Create(snapshot).Error)
}

// ListSince lists a user's snapshots at or after from in ascending time
func (r *SnapshotRepository) ListSince(ctx context.Context, userID string, from time.Time) ([]model.PortfolioSnapshot, error) {
	var snapshots []model.PortfolioSnapshot
	err := r.db.WithContext(ctx).
		Scopes(since("timestamp", from)).
		Where("user_id = ?", userID).
		Order("timestamp ASC").
		Find(&snapshots).Error
	return snapshots, err
}
