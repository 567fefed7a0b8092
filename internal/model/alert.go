package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Alert type constants
const (
	AlertTypePrice     = "PRICE"
	AlertTypeBotStatus = "BOT_STATUS"
	AlertTypePNL       = "PNL"
	AlertTypeSystem    = "SYSTEM"
)

// Alert condition constants
const (
	AlertConditionAbove  = "ABOVE"
	AlertConditionBelow  = "BELOW"
	AlertConditionEquals = "EQUALS"
	AlertConditionChange = "CHANGE"
)

// Alert is a user defined notification rule
type Alert struct {
	ID             string                      `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID         string                      `gorm:"type:varchar(36);not null;index" json:"userId"`
	Name           string                      `gorm:"type:varchar(100);not null" json:"name"`
	Type           string                      `gorm:"type:varchar(20);not null" json:"type"`
	Condition      string                      `gorm:"type:varchar(20);not null" json:"condition"`
	Threshold      float64                     `gorm:"not null" json:"threshold"`
	Asset          *string                     `gorm:"type:varchar(20)" json:"asset"`
	BotID          *string                     `gorm:"type:varchar(36);index" json:"botId"`
	Enabled        bool                        `gorm:"not null;default:true;index" json:"enabled"`
	Channels       datatypes.JSONSlice[string] `json:"channels"`
	TriggeredAt    *time.Time                  `json:"triggeredAt"`
	TriggeredCount int                         `gorm:"not null;default:0" json:"triggeredCount"`
	CreatedAt      time.Time                   `json:"createdAt"`
	UpdatedAt      time.Time                   `json:"updatedAt"`

	// Relationships
	Bot    *Bot    `gorm:"foreignKey:BotID" json:"-"`
	BotRef *BotRef `gorm:"-" json:"bot,omitempty"`
}

// BeforeCreate assigns the id and normalizes channels
func (a *Alert) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = newID()
	}
	if a.Channels == nil {
		a.Channels = datatypes.JSONSlice[string]{}
	}
	return nil
}

// AfterFind exposes the preloaded bot as its compact projection
func (a *Alert) AfterFind(tx *gorm.DB) error {
	if a.Bot != nil {
		a.BotRef = &BotRef{ID: a.Bot.ID, Name: a.Bot.Name}
	}
	return nil
}

// IsTriggered reports whether the alert has fired at least once
func (a *Alert) IsTriggered() bool {
	return a.TriggeredAt != nil
}

// CreateAlertRequest represents the request to create an alert
type CreateAlertRequest struct {
	Name      string   `json:"name" binding:"required,min=1,max=100"`
	Type      string   `json:"type" binding:"required,oneof=PRICE BOT_STATUS PNL SYSTEM"`
	Condition string   `json:"condition" binding:"required,oneof=ABOVE BELOW EQUALS CHANGE"`
	Threshold *float64 `json:"threshold" binding:"required"`
	Asset     *string  `json:"asset" binding:"omitempty,max=20"`
	BotID     *string  `json:"botId" binding:"omitempty,uuid"`
	Channels  []string `json:"channels" binding:"omitempty,dive,oneof=email push telegram line"`
}

// UpdateAlertRequest carries the mutable alert fields; nil means unchanged
type UpdateAlertRequest struct {
	Name      *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Condition *string  `json:"condition" binding:"omitempty,oneof=ABOVE BELOW EQUALS CHANGE"`
	Threshold *float64 `json:"threshold"`
	Enabled   *bool    `json:"enabled"`
	Channels  []string `json:"channels" binding:"omitempty,dive,oneof=email push telegram line"`
}
