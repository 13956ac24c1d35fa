package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"soulsync/internal/config"
	"soulsync/internal/model"
	"soulsync/internal/repository"
)

// AuthService handles registration, authentication, and token generation
type AuthService struct {
	userRepo     *repository.UserRepository
	verification *VerificationService
	cfg          *config.Config
	logger       *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo *repository.UserRepository,
	verification *VerificationService,
	cfg *config.Config,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		verification: verification,
		cfg:          cfg,
		logger:       logger,
	}
}

// Register creates a new account. Admin accounts are seeded, never
// registered; a professional registration also enters the pending
// verification queue.
func (s *AuthService) Register(ctx context.Context, userCreate *model.UserCreate) (*model.TokenResponse, error) {
	existing, err := s.userRepo.GetByEmail(ctx, userCreate.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Username, userCreate.Username) {
			return nil, ErrUsernameInUse
		}
	}

	role := userCreate.Role
	if role == "" {
		role = model.RoleUser
	}
	if role == model.RoleProfessional && (userCreate.Occupation == "" || userCreate.IdentityDocument == "") {
		return nil, ErrMissingCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(userCreate.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		ID:               uuid.New().String(),
		Username:         userCreate.Username,
		Email:            userCreate.Email,
		PasswordHash:     string(hashedPassword),
		Role:             role,
		IsVerified:       false,
		Occupation:       userCreate.Occupation,
		IdentityDocument: userCreate.IdentityDocument,
		LastLogin:        &now,
		CreatedAt:        now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if role == model.RoleProfessional {
		if err := s.verification.Submit(ctx, user); err != nil {
			return nil, err
		}
	}

	accessToken, refreshToken, expiresAt, err := s.generateTokens(user.ID)
	if err != nil {
		return nil, err
	}

	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		User:         *user,
	}, nil
}

// SeedAdmin ensures the configured admin account exists. Admin accounts are
// never created through registration; this runs once at startup and is
// idempotent across restarts.
func (s *AuthService) SeedAdmin(ctx context.Context, seed config.SeedAdminConfig) error {
	if seed.Email == "" || seed.Password == "" {
		return errors.New("admin seed requires an email and password")
	}

	existing, err := s.userRepo.GetByEmail(ctx, seed.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash admin password", zap.Error(err))
		return err
	}

	admin := &model.User{
		ID:           uuid.New().String(),
		Username:     seed.Username,
		Email:        seed.Email,
		PasswordHash: string(hashedPassword),
		Role:         model.RoleAdmin,
		IsVerified:   true,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		return err
	}

	s.logger.Info("seeded admin account",
		zap.String("username", seed.Username),
		zap.String("email", seed.Email))
	return nil
}

// Login authenticates a user and returns tokens. A rejected professional's
// account no longer exists, so their login fails with invalid credentials.
func (s *AuthService) Login(ctx context.Context, login *model.UserLogin) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, login.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(login.Password)); err != nil {
		s.logger.Debug("password verification failed", zap.Error(err))
		return nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, expiresAt, err := s.generateTokens(user.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	if _, err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Warn("failed to update last login", zap.Error(err), zap.String("userID", user.ID))
	}

	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		User:         *user,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.Auth.JWTSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidCredentials
	}

	if tokenType, ok := claims["type"].(string); !ok || tokenType != "refresh" {
		return nil, ErrInvalidCredentials
	}

	userID, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, newRefreshToken, expiresAt, err := s.generateTokens(userID)
	if err != nil {
		return nil, err
	}

	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresAt:    expiresAt,
		User:         *user,
	}, nil
}

// generateTokens creates a new pair of access and refresh tokens
func (s *AuthService) generateTokens(userID string) (accessToken, refreshToken string, expiresAt time.Time, err error) {
	accessExpiry := time.Now().Add(s.cfg.Auth.AccessTokenDuration)

	accessClaims := jwt.MapClaims{
		"sub":  userID,
		"exp":  accessExpiry.Unix(),
		"iat":  time.Now().Unix(),
		"type": "access",
	}

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessToken, err = access.SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		s.logger.Error("failed to sign access token", zap.Error(err))
		return "", "", time.Time{}, err
	}

	refreshExpiry := time.Now().Add(s.cfg.Auth.RefreshTokenDuration)
	refreshClaims := jwt.MapClaims{
		"sub":  userID,
		"exp":  refreshExpiry.Unix(),
		"iat":  time.Now().Unix(),
		"type": "refresh",
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshToken, err = refresh.SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		s.logger.Error("failed to sign refresh token", zap.Error(err))
		return "", "", time.Time{}, err
	}

	return accessToken, refreshToken, accessExpiry, nil
}

// ValidateToken validates an access token and returns the user ID
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.Auth.JWTSecret), nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	if tokenType, ok := claims["type"].(string); !ok || tokenType != "access" {
		return "", errors.New("invalid token type")
	}

	userID, ok := claims["sub"].(string)
	if !ok {
		return "", errors.New("invalid user ID in token")
	}

	return userID, nil
}
