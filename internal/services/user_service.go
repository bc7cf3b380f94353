package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"pilotconnect/internal/apperrors"
	"pilotconnect/internal/auth"
	"pilotconnect/internal/constants"
	"pilotconnect/internal/db/repositories"
	"pilotconnect/internal/logging"
	"pilotconnect/internal/models/dtos"
	models "pilotconnect/internal/models/gorm"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users    *repositories.UserRepositoryGORM
	profiles *repositories.ProfileRepository
	tokens   *auth.TokenService
}

func NewUserService(
	users *repositories.UserRepositoryGORM,
	profiles *repositories.ProfileRepository,
	tokens *auth.TokenService,
) *UserService {
	return &UserService{
		users:    users,
		profiles: profiles,
		tokens:   tokens,
	}
}

// Register creates an account with a bcrypt password hash
func (s *UserService) Register(ctx context.Context, req dtos.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)

	if n := utf8.RuneCountInString(username); n < constants.MinUsernameLength || n > constants.MaxUsernameLength {
		return nil, fmt.Errorf("%w: username must be %d to %d characters", apperrors.ErrValidation,
			constants.MinUsernameLength, constants.MaxUsernameLength)
	}
	if len(req.Password) < constants.MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation,
			constants.MinPasswordLength)
	}
	// bcrypt only accepts up to 72 bytes
	if len(req.Password) > constants.MaxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", apperrors.ErrValidation,
			constants.MaxPasswordBytes)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrUniqueness) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUniqueness, constants.MsgUsernameTaken)
		}
		return nil, err
	}

	logging.Info("Registered user", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Authenticate checks credentials and issues a session token.
// A known user's profile gets its activity stamped.
func (s *UserService) Authenticate(ctx context.Context, req dtos.LoginRequest) (*dtos.TokenResponse, error) {
	invalid := fmt.Errorf("%w: %s", apperrors.ErrValidation, constants.MsgInvalidCredentials)

	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, invalid
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, invalid
	}

	token, claims, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	if err := s.profiles.Touch(ctx, user.ID, time.Now().UTC()); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logging.Warn("Failed to stamp activity on login", "user_id", user.ID, "error", err)
	}

	return &dtos.TokenResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt(),
		User:      *dtos.NewUserResponse(user),
	}, nil
}

// Logout revokes the presented token
func (s *UserService) Logout(ctx context.Context, claims auth.UserClaims) error {
	return s.tokens.Revoke(ctx, claims)
}

// GetUser loads a user with profile for the pilot page
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}
