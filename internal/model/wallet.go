package model

import (
	"time"

	"gorm.io/gorm"
)

// Wallet is a tracked on-chain address; (user, address, chain) is unique
type Wallet struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_wallets_user_address_chain" json:"userId"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Chain     string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_wallets_user_address_chain" json:"chain"`
	Address   string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_wallets_user_address_chain" json:"address"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relationships
	Assets []Asset `gorm:"constraint:OnDelete:CASCADE" json:"assets"`
}

// BeforeCreate assigns the id
func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = newID()
	}
	return nil
}

// Asset is a token balance held in one wallet
type Asset struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	WalletID  string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_assets_wallet_symbol" json:"walletId"`
	Symbol    string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_assets_wallet_symbol" json:"symbol"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Balance   float64   `gorm:"not null;default:0" json:"balance"`
	Price     float64   `gorm:"not null;default:0" json:"price"`
	Value     float64   `gorm:"not null;default:0" json:"value"`
	Change24h float64   `gorm:"not null;default:0" json:"change24h"` // percent
	Logo      *string   `gorm:"type:text" json:"logo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the id
func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = newID()
	}
	return nil
}

// BeforeSave keeps value consistent with balance and price
func (a *Asset) BeforeSave(tx *gorm.DB) error {
	a.Value = a.Balance * a.Price
	return nil
}

// WalletListItem is a wallet with its computed value and asset count
type WalletListItem struct {
	Wallet
	TotalValue float64     `json:"totalValue"`
	Count      WalletCount `json:"_count"`
}

// WalletCount mirrors the relation counters of a wallet
type WalletCount struct {
	Assets int `json:"assets"`
}

// CreateWalletRequest represents the request to track a wallet
type CreateWalletRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Address string `json:"address" binding:"required,min=1,max=255"`
	Chain   string `json:"chain" binding:"required,min=1,max=50"`
}

// UpdateWalletRequest carries the mutable wallet fields; nil means unchanged
type UpdateWalletRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	IsActive *bool   `json:"isActive"`
}

// UpsertAssetRequest sets the balance and quote of one symbol in a wallet
type UpsertAssetRequest struct {
	Symbol    string   `json:"symbol" binding:"required,min=1,max=20"`
	Name      string   `json:"name" binding:"required,min=1,max=100"`
	Balance   *float64 `json:"balance" binding:"required,gte=0"`
	Price     *float64 `json:"price" binding:"required,gte=0"`
	Change24h float64  `json:"change24h"`
	Logo      *string  `json:"logo" binding:"omitempty,url"`
}
