package repository

import (
	"context"

	"gorm.io/gorm"

	"dexboard/backend/internal/model"
)

// UserRepository handles user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create creates a new user; a taken email yields ErrDuplicate
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Update applies column updates and returns the fresh row
func (r *UserRepository) Update(ctx context.Context, userID string, updates map[string]interface{}) (*model.User, error) {
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(updates)
		if err := affected(res); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, userID)
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Update("password", passwordHash)
	return affected(res)
}

// Delete removes a user and everything the user owns in one transaction
func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		walletIDs := tx.Model(&model.Wallet{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("wallet_id IN (?)", walletIDs).Delete(&model.Asset{}).Error; err != nil {
			return err
		}

		owned := []interface{}{
			&model.Wallet{},
			&model.Alert{},
			&model.Trade{},
			&model.PortfolioSnapshot{},
			&model.Bot{},
		}
		for _, m := range owned {
			if err := tx.Where("user_id = ?", userID).Delete(m).Error; err != nil {
				return err
			}
		}

		return affected(tx.Where("id = ?", userID).Delete(&model.User{}))
	})
}
