package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dexboard/backend/internal/model"
)

// WalletRepository handles wallet and asset data operations
type WalletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{
		db: db,
	}
}

// Create creates a wallet; the same (address, chain) twice for one user yields ErrDuplicate
func (r *WalletRepository) Create(ctx context.Context, wallet *model.Wallet) error {
	return translate(r.db.WithContext(ctx).Create(wallet).Error)
}

// Exists checks whether the user already tracks address on chain
func (r *WalletRepository) Exists(ctx context.Context, userID, address, chain string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Wallet{}).
		Where("user_id = ? AND address = ? AND chain = ?", userID, address, chain).
		Count(&count).Error
	return count > 0, err
}

// GetByID gets an owned wallet with its assets
func (r *WalletRepository) GetByID(ctx context.Context, userID, walletID string) (*model.Wallet, error) {
	var wallet model.Wallet
	err := r.db.WithContext(ctx).
		Preload("Assets", orderAssets).
		Where("id = ? AND user_id = ?", walletID, userID).
		First(&wallet).Error
	if err != nil {
		return nil, translate(err)
	}
	return &wallet, nil
}

// ListByUser lists a user's wallets with assets, newest first
func (r *WalletRepository) ListByUser(ctx context.Context, userID string) ([]model.Wallet, error) {
	return r.list(ctx, r.db.Where("user_id = ?", userID), "created_at DESC")
}

// ListActive lists a user's active wallets with assets in the order they were added,
// so the earliest wallet holding a symbol supplies its quote when assets are merged
func (r *WalletRepository) ListActive(ctx context.Context, userID string) ([]model.Wallet, error) {
	return r.list(ctx, r.db.Where("user_id = ? AND is_active = ?", userID, true), "created_at ASC")
}

func (r *WalletRepository) list(ctx context.Context, q *gorm.DB, order string) ([]model.Wallet, error) {
	var wallets []model.Wallet
	err := q.WithContext(ctx).
		Preload("Assets", orderAssets).
		Order(order).
		Find(&wallets).Error
	return wallets, err
}

// Update applies column updates to an owned wallet and returns the fresh row
func (r *WalletRepository) Update(ctx context.Context, userID, walletID string, updates map[string]interface{}) (*model.Wallet, error) {
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&model.Wallet{}).
			Where("id = ? AND user_id = ?", walletID, userID).
			Updates(updates)
		if err := affected(res); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, userID, walletID)
}

// Delete removes an owned wallet and its assets
func (r *WalletRepository) Delete(ctx context.Context, userID, walletID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&model.Wallet{}).Select("id").Where("id = ? AND user_id = ?", walletID, userID)
		if err := tx.Where("wallet_id IN (?)", owned).Delete(&model.Asset{}).Error; err != nil {
			return err
		}
		return affected(tx.Where("id = ? AND user_id = ?", walletID, userID).Delete(&model.Wallet{}))
	})
}

// UpsertAsset creates or replaces the asset with the same symbol in a wallet.
// The caller must have checked wallet ownership.
func (r *WalletRepository) UpsertAsset(ctx context.Context, asset *model.Asset) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Asset
		err := tx.Where("wallet_id = ? AND symbol = ?", asset.WalletID, asset.Symbol).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return translate(tx.Create(asset).Error)
		case err != nil:
			return err
		}

		asset.ID = existing.ID
		asset.CreatedAt = existing.CreatedAt
		return translate(tx.Save(asset).Error)
	})
}

// DeleteAsset removes one symbol from a wallet
func (r *WalletRepository) DeleteAsset(ctx context.Context, walletID, symbol string) error {
	return affected(r.db.WithContext(ctx).
		Where("wallet_id = ? AND symbol = ?", walletID, symbol).
		Delete(&model.Asset{}))
}

func orderAssets(db *gorm.DB) *gorm.DB {
	return db.Order("value DESC")
}
