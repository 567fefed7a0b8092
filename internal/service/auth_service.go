package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"dexboard/backend/internal/model"
	"dexboard/backend/internal/repository"
	"dexboard/backend/internal/util"
	"dexboard/backend/pkg/crypto"
	"dexboard/backend/pkg/jwt"
	"dexboard/backend/pkg/logger"
)

// TokenStore remembers revoked token ids
type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthService handles authentication logic
type AuthService struct {
	userRepo   *repository.UserRepository
	tokens     TokenStore
	jwtManager *jwt.JWTManager
	log        *logger.Logger
	now        Clock
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, tokens TokenStore, jwtManager *jwt.JWTManager, log *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		jwtManager: jwtManager,
		log:        log,
		now:        UTCNow,
	}
}

// Register creates an account and signs the user in
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	if !crypto.ValidatePasswordStrength(req.Password) {
		return nil, util.ErrValidation("Password must be 6-72 characters")
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, util.ErrInternalServer("Failed to check email", err)
	}
	if exists {
		return nil, util.ErrAlreadyExists("Email already registered")
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, util.ErrInternalServer("Failed to hash password", err)
	}

	user := &model.User{
		Email:    email,
		Password: passwordHash,
		Name:     req.Name,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same email
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, util.ErrAlreadyExists("Email already registered")
		}
		return nil, util.ErrInternalServer("Failed to create user", err)
	}

	s.log.WithField("user_id", user.ID).Info("User registered")
	return s.issue(user)
}

// Login verifies credentials and issues a session token
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, util.ErrInternalServer("Failed to load user", err)
	}

	if !crypto.CheckPassword(req.Password, user.Password) {
		return nil, invalidCredentials()
	}

	return s.issue(user)
}

// Logout revokes the presented token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	if err := s.tokens.Revoke(ctx, claims.ID, claims.RemainingLifetime()); err != nil {
		return util.ErrInternalServer("Failed to revoke token", err)
	}
	return nil
}

// Authenticate validates a token and returns its claims.
// Revoked tokens and tokens of deleted accounts are rejected.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, util.NewAppError(http.StatusUnauthorized, util.ErrCodeTokenInvalid, "Invalid token")
	}

	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, util.ErrInternalServer("Failed to check token status", err)
	}
	if revoked {
		return nil, util.NewAppError(http.StatusUnauthorized, util.ErrCodeTokenInvalid, "Token has been revoked")
	}

	if _, err := s.userRepo.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.NewAppError(http.StatusUnauthorized, util.ErrCodeTokenInvalid, "Invalid token")
		}
		return nil, util.ErrInternalServer("Failed to load user", err)
	}

	return claims, nil
}

// TokenDuration is the lifetime of issued tokens, also used as the cookie max age
func (s *AuthService) TokenDuration() time.Duration {
	return s.jwtManager.TokenDuration()
}

func (s *AuthService) issue(user *model.User) (*model.AuthResponse, error) {
	token, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, util.ErrInternalServer("Failed to generate token", err)
	}

	return &model.AuthResponse{
		User:      user,
		Token:     token,
		ExpiresAt: s.now().Add(s.jwtManager.TokenDuration()),
	}, nil
}

func invalidCredentials() *util.AppError {
	return util.NewAppError(http.StatusUnauthorized, util.ErrCodeInvalidCredentials, "Invalid credentials")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
