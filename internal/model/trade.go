package model

import (
	"time"

	"gorm.io/gorm"
)

// Trade side constants
const (
	TradeTypeBuy  = "buy"
	TradeTypeSell = "sell"
)

// ManualTradeLabel is shown for trades without a bot
const ManualTradeLabel = "Manual"

// Trade is an executed fill. Trades are immutable once recorded.
type Trade struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;index:idx_trades_user_timestamp" json:"userId"`
	BotID     *string   `gorm:"type:varchar(36);index" json:"botId"`
	Type      string    `gorm:"type:varchar(10);not null" json:"type"`
	Pair      string    `gorm:"type:varchar(30);not null;index" json:"pair"`
	Price     float64   `gorm:"not null" json:"price"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Total     float64   `gorm:"not null" json:"total"`
	Profit    *float64  `json:"profit"`
	Timestamp time.Time `gorm:"not null;index:idx_trades_user_timestamp,sort:desc" json:"timestamp"`

	// Relationships
	Bot *Bot `gorm:"foreignKey:BotID" json:"-"`
}

// BeforeCreate assigns the id and stamps the trade
func (t *Trade) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = newID()
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now().UTC()
	}
	return nil
}

// ProfitOrZero treats an unrealized trade as zero profit
func (t *Trade) ProfitOrZero() float64 {
	if t.Profit == nil {
		return 0
	}
	return *t.Profit
}

// BotName returns the owning bot's name or the manual label
func (t *Trade) BotName() string {
	if t.Bot == nil {
		return ManualTradeLabel
	}
	return t.Bot.Name
}

// CreateTradeRequest records a manual or bot trade
type CreateTradeRequest struct {
	BotID     *string    `json:"botId" binding:"omitempty,uuid"`
	Type      string     `json:"type" binding:"required,oneof=buy sell"`
	Pair      string     `json:"pair" binding:"required,max=30"`
	Price     float64    `json:"price" binding:"required,gt=0"`
	Amount    float64    `json:"amount" binding:"required,gt=0"`
	Total     *float64   `json:"total" binding:"omitempty,gte=0"`
	Profit    *float64   `json:"profit"`
	Timestamp *time.Time `json:"timestamp"`
}
