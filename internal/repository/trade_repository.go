package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"dexboard/backend/internal/model"
)

// TradeRepository handles trade data operations. Trades are append only.
type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new trade repository
func NewTradeRepository(db *gorm.DB) *TradeRepository {
	return &TradeRepository{
		db: db,
	}
}

// Create records a trade. When the trade references a bot, the bot must belong to the same user
// and its counters are incremented in the same transaction.
func (r *TradeRepository) Create(ctx context.Context, trade *model.Trade) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if trade.BotID != nil {
			res := tx.Model(&model.Bot{}).
				Where("id = ? AND user_id = ?", *trade.BotID, trade.UserID).
				Updates(map[string]interface{}{
					"trades_count": gorm.Expr("trades_count + ?", 1),
					"profit":       gorm.Expr("profit + ?", trade.ProfitOrZero()),
				})
			if err := affected(res); err != nil {
				return err
			}
		}
		return translate(tx.Create(trade).Error)
	})
}

// ListRecent lists the latest trades of a user with their bot
func (r *TradeRepository) ListRecent(ctx context.Context, userID string, limit int) ([]model.Trade, error) {
	var trades []model.Trade
	err := r.db.WithContext(ctx).
		Preload("Bot").
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&trades).Error
	return trades, err
}

// ListSince lists a user's trades at or after from in ascending time; zero from means all
func (r *TradeRepository) ListSince(ctx context.Context, userID string, from time.Time) ([]model.Trade, error) {
	var trades []model.Trade
	err := r.db.WithContext(ctx).
		Scopes(since("timestamp", from)).
		Where("user_id = ?", userID).
		Order("timestamp ASC").
		Find(&trades).Error
	return trades, err
}

// ListByBot lists every trade of one bot, newest first
func (r *TradeRepository) ListByBot(ctx context.Context, userID, botID string) ([]model.Trade, error) {
	var trades []model.Trade
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND bot_id = ?", userID, botID).
		Order("timestamp DESC").
		Find(&trades).Error
	return trades, err
}

// ListRealizedByBot groups a user's bot trades that carry a realized profit by bot id
func (r *TradeRepository) ListRealizedByBot(ctx context.Context, userID string) (map[string][]model.Trade, error) {
	var trades []model.Trade
	err := r.db.WithContext(ctx).
		Select("id", "bot_id", "profit").
		Where("user_id = ? AND bot_id IS NOT NULL AND profit IS NOT NULL", userID).
		Find(&trades).Error
	if err != nil {
		return nil, err
	}

	byBot := make(map[string][]model.Trade)
	for _, t := range trades {
		byBot[*t.BotID] = append(byBot[*t.BotID], t)
	}
	return byBot, nil
}

// Page lists a user's trades newest first with the total count of the window
func (r *TradeRepository) Page(ctx context.Context, userID string, from time.Time, page, limit int) ([]model.Trade, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&model.Trade{}).
		Scopes(since("timestamp", from)).
		Where("user_id = ?", userID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var trades []model.Trade
	err := base.Session(&gorm.Session{}).
		Preload("Bot").
		Order("timestamp DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&trades).Error
	if err != nil {
		return nil, 0, err
	}
	return trades, total, nil
}
