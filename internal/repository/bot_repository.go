package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"dexboard/backend/internal/model"
)

// BotRepository handles bot data operations. Every query is scoped by owner.
type BotRepository struct {
	db *gorm.DB
}

// NewBotRepository creates a new bot repository
func NewBotRepository(db *gorm.DB) *BotRepository {
	return &BotRepository{
		db: db,
	}
}

// Create creates a new bot
func (r *BotRepository) Create(ctx context.Context, bot *model.Bot) error {
	return translate(r.db.WithContext(ctx).Create(bot).Error)
}

// GetByID gets a bot owned by userID
func (r *BotRepository) GetByID(ctx context.Context, userID, botID string) (*model.Bot, error) {
	var bot model.Bot
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", botID, userID).
		First(&bot).Error
	if err != nil {
		return nil, translate(err)
	}
	return &bot, nil
}

// GetDetail gets a bot with its latest trades and its alerts
func (r *BotRepository) GetDetail(ctx context.Context, userID, botID string, tradeLimit int) (*model.Bot, error) {
	var bot model.Bot
	err := r.db.WithContext(ctx).
		Preload("Trades", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp DESC").Limit(tradeLimit)
		}).
		Preload("Alerts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ? AND user_id = ?", botID, userID).
		First(&bot).Error
	if err != nil {
		return nil, translate(err)
	}
	return &bot, nil
}

// ListByUser lists a user's bots, newest first
func (r *BotRepository) ListByUser(ctx context.Context, userID string) ([]model.Bot, error) {
	var bots []model.Bot
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bots).Error
	return bots, err
}

// CountTrades returns the number of persisted trades per bot of a user
func (r *BotRepository) CountTrades(ctx context.Context, userID string) (map[string]int64, error) {
	var rows []struct {
		BotID string
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Trade{}).
		Select("bot_id, COUNT(*) AS count").
		Where("user_id = ? AND bot_id IS NOT NULL", userID).
		Group("bot_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.BotID] = row.Count
	}
	return counts, nil
}

// Update applies column updates to an owned bot and returns the fresh row
func (r *BotRepository) Update(ctx context.Context, userID, botID string, updates map[string]interface{}) (*model.Bot, error) {
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&model.Bot{}).
			Where("id = ? AND user_id = ?", botID, userID).
			Updates(updates)
		if err := affected(res); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, userID, botID)
}

// Delete removes an owned bot. Its trades and alerts are kept and detached.
func (r *BotRepository) Delete(ctx context.Context, userID, botID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Trade{}).
			Where("bot_id = ? AND user_id = ?", botID, userID).
			Update("bot_id", nil).Error
		if err != nil {
			return err
		}
		err = tx.Model(&model.Alert{}).
			Where("bot_id = ? AND user_id = ?", botID, userID).
			Update("bot_id", nil).Error
		if err != nil {
			return err
		}
		return affected(tx.Where("id = ? AND user_id = ?", botID, userID).Delete(&model.Bot{}))
	})
}

// Transition updates the bot only if its status and last start are still those of seen.
// ErrConflict means another request changed the bot in between.
func (r *BotRepository) Transition(ctx context.Context, seen *model.Bot, updates map[string]interface{}) (*model.Bot, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Bot{}).
		Where("id = ? AND user_id = ? AND status = ?", seen.ID, seen.UserID, seen.Status)
	if seen.LastStarted == nil {
		q = q.Where("last_started IS NULL")
	} else {
		q = q.Where("last_started = ?", *seen.LastStarted)
	}

	res := q.Updates(updates)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrConflict
	}
	return r.GetByID(ctx, seen.UserID, seen.ID)
}

// StartUpdates are the columns written when a bot starts
func StartUpdates(now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"status":       model.BotStatusRunning,
		"last_started": now,
	}
}

// StopUpdates are the columns written when a bot stops
func StopUpdates(now time.Time, uptime int) map[string]interface{} {
	return map[string]interface{}{
		"status":       model.BotStatusStopped,
		"last_stopped": now,
		"uptime":       uptime,
	}
}
