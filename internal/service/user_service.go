package service

import (
	"context"
	"strings"

	"dexboard/backend/internal/model"
	"dexboard/backend/internal/repository"
	"dexboard/backend/internal/util"
	"dexboard/backend/pkg/crypto"
	"dexboard/backend/pkg/logger"
)

// UserService handles profile and account operations of the signed in user
type UserService struct {
	userRepo *repository.UserRepository
	log      *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo *repository.UserRepository, log *logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		log:      log,
	}
}

// GetProfile gets the current user's profile
func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, util.ErrUserNotFound(), "Failed to load user")
	}
	return user, nil
}

// UpdateProfile updates name, currency and language; omitted fields are left alone
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.User, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			updates["name"] = nil
		} else {
			updates["name"] = name
		}
	}
	if req.Currency != nil {
		updates["currency"] = strings.ToUpper(*req.Currency)
	}
	if req.Language != nil {
		updates["language"] = strings.ToLower(*req.Language)
	}

	user, err := s.userRepo.Update(ctx, userID, updates)
	if err != nil {
		return nil, notFoundOr(err, util.ErrUserNotFound(), "Failed to update profile")
	}
	return user, nil
}

// ChangePassword replaces the password after verifying the current one
func (s *UserService) ChangePassword(ctx context.Context, userID string, req *model.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return notFoundOr(err, util.ErrUserNotFound(), "Failed to load user")
	}

	if !crypto.CheckPassword(req.CurrentPassword, user.Password) {
		return util.ErrBadRequest("Current password is incorrect")
	}

	if !crypto.ValidatePasswordStrength(req.NewPassword) {
		return util.ErrValidation("Password must be 6-72 characters")
	}

	passwordHash, err := crypto.HashPassword(req.NewPassword)
	if err != nil {
		return util.ErrInternalServer("Failed to hash password", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return notFoundOr(err, util.ErrUserNotFound(), "Failed to update password")
	}

	s.log.WithField("user_id", userID).Info("Password changed")
	return nil
}

// DeleteAccount removes the user and everything the user owns
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return notFoundOr(err, util.ErrUserNotFound(), "Failed to delete account")
	}

	s.log.WithField("user_id", userID).Info("Account deleted")
	return nil
}
