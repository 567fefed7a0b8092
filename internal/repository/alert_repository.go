package repository

import (
	"context"

	"gorm.io/gorm"

	"dexboard/backend/internal/model"
)

// AlertRepository handles alert data operations
type AlertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{
		db: db,
	}
}

// Create creates an alert. Bot ownership is checked by the caller.
func (r *AlertRepository) Create(ctx context.Context, alert *model.Alert) error {
	return translate(r.db.WithContext(ctx).Create(alert).Error)
}

// GetByID gets an owned alert with its bot reference
func (r *AlertRepository) GetByID(ctx context.Context, userID, alertID string) (*model.Alert, error) {
	var alert model.Alert
	err := r.db.WithContext(ctx).
		Preload("Bot").
		Where("id = ? AND user_id = ?", alertID, userID).
		First(&alert).Error
	if err != nil {
		return nil, translate(err)
	}
	return &alert, nil
}

// ListByUser lists a user's alerts with their bot reference, newest first
func (r *AlertRepository) ListByUser(ctx context.Context, userID string) ([]model.Alert, error) {
	var alerts []model.Alert
	err := r.db.WithContext(ctx).
		Preload("Bot").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&alerts).Error
	return alerts, err
}

// ListEnabled lists a user's enabled alerts
func (r *AlertRepository) ListEnabled(ctx context.Context, userID string) ([]model.Alert, error) {
	var alerts []model.Alert
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND enabled = ?", userID, true).
		Order("created_at DESC").
		Find(&alerts).Error
	return alerts, err
}

// ListTriggered lists alerts that fired at least once, most recent first
func (r *AlertRepository) ListTriggered(ctx context.Context, userID string, limit int) ([]model.Alert, error) {
	var alerts []model.Alert
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND triggered_at IS NOT NULL", userID).
		Order("triggered_at DESC").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}

// Update applies column updates to an owned alert and returns the fresh row
func (r *AlertRepository) Update(ctx context.Context, userID, alertID string, updates map[string]interface{}) (*model.Alert, error) {
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&model.Alert{}).
			Where("id = ? AND user_id = ?", alertID, userID).
			Updates(updates)
		if err := affected(res); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, userID, alertID)
}

// Toggle flips the enabled flag in a single statement
func (r *AlertRepository) Toggle(ctx context.Context, userID, alertID string) (*model.Alert, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Alert{}).
		Where("id = ? AND user_id = ?", alertID, userID).
		Update("enabled", gorm.Expr("NOT enabled"))
	if err := affected(res); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, userID, alertID)
}

// Delete removes an owned alert
func (r *AlertRepository) Delete(ctx context.Context, userID, alertID string) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", alertID, userID).
		Delete(&model.Alert{}))
}
