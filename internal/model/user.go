package model

import (
	"time"

	"gorm.io/gorm"
)

// User preference defaults
const (
	DefaultCurrency = "USD"
	DefaultLanguage = "th"
)

// User represents an account; every other entity is owned by exactly one user
type User struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Name      *string   `gorm:"type:varchar(100)" json:"name"`
	Currency  string    `gorm:"type:varchar(10);not null;default:'USD'" json:"currency"`
	Language  string    `gorm:"type:varchar(10);not null;default:'th'" json:"language"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relationships
	Bots      []Bot               `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Wallets   []Wallet            `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Trades    []Trade             `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Alerts    []Alert             `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Snapshots []PortfolioSnapshot `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate assigns the id and preference defaults
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = newID()
	}
	if u.Currency == "" {
		u.Currency = DefaultCurrency
	}
	if u.Language == "" {
		u.Language = DefaultLanguage
	}
	return nil
}

// RegisterRequest represents user registration request
type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6,max=72"`
	Name     *string `json:"name" binding:"omitempty,max=100"`
}

// LoginRequest represents user login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries the mutable profile fields; nil means unchanged
type UpdateProfileRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Currency *string `json:"currency" binding:"omitempty,min=3,max=10"`
	Language *string `json:"language" binding:"omitempty,min=2,max=10"`
}

// ChangePasswordRequest represents password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6,max=72"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	User      *User     `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
