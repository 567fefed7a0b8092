package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Bot status constants
const (
	BotStatusStopped = "stopped"
	BotStatusRunning = "running"
	BotStatusError   = "error"
	BotStatusSyncing = "syncing"
)

// Bot type constants
const (
	BotTypeGrid      = "grid"
	BotTypeDCA       = "dca"
	BotTypeArbitrage = "arbitrage"
	BotTypeCustom    = "custom"
)

// Bot is a user configured trading strategy record. Bots never trade on their own;
// status only changes through explicit start and stop actions.
type Bot struct {
	ID            string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID        string            `gorm:"type:varchar(36);not null;index" json:"userId"`
	Name          string            `gorm:"type:varchar(100);not null" json:"name"`
	Type          string            `gorm:"type:varchar(20);not null" json:"type"`
	Pair          string            `gorm:"type:varchar(30);not null" json:"pair"`
	Exchange      string            `gorm:"type:varchar(50);not null" json:"exchange"`
	Config        datatypes.JSONMap `json:"config"`
	Status        string            `gorm:"type:varchar(20);not null;default:'stopped';index" json:"status"`
	Profit        float64           `gorm:"not null;default:0" json:"profit"`
	ProfitPercent float64           `gorm:"not null;default:0" json:"profitPercent"`
	TradesCount   int               `gorm:"not null;default:0" json:"tradesCount"`
	Uptime        int               `gorm:"not null;default:0" json:"uptime"` // hours
	LastStarted   *time.Time        `json:"lastStarted"`
	LastStopped   *time.Time        `json:"lastStopped"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`

	// Relationships
	Trades []Trade `gorm:"constraint:OnDelete:SET NULL" json:"trades,omitempty"`
	Alerts []Alert `gorm:"constraint:OnDelete:SET NULL" json:"alerts,omitempty"`
}

// BeforeCreate assigns the id and the initial status
func (b *Bot) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = newID()
	}
	if b.Status == "" {
		b.Status = BotStatusStopped
	}
	if b.Config == nil {
		b.Config = datatypes.JSONMap{}
	}
	return nil
}

// IsRunning reports whether the bot is in the running state
func (b *Bot) IsRunning() bool {
	return b.Status == BotStatusRunning
}

// UptimeUntil returns the accumulated uptime after a stop at now.
// Only whole hours since the last start are added.
func (b *Bot) UptimeUntil(now time.Time) int {
	if b.LastStarted == nil || now.Before(*b.LastStarted) {
		return b.Uptime
	}
	return b.Uptime + int(now.Sub(*b.LastStarted)/time.Hour)
}

// CreateBotRequest represents the request to create a bot
type CreateBotRequest struct {
	Name     string                 `json:"name" binding:"required,min=1,max=100"`
	Type     string                 `json:"type" binding:"required,oneof=grid dca arbitrage custom"`
	Pair     string                 `json:"pair" binding:"required,max=30"`
	Exchange string                 `json:"exchange" binding:"required,max=50"`
	Config   map[string]interface{} `json:"config"`
}

// UpdateBotRequest carries the mutable bot fields; nil means unchanged
type UpdateBotRequest struct {
	Name   *string                `json:"name" binding:"omitempty,min=1,max=100"`
	Config map[string]interface{} `json:"config"`
}
