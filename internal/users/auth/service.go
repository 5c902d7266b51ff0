// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DmitryMustk/artdistrict/internal/platform/apperr"
	"github.com/DmitryMustk/artdistrict/internal/platform/authz"
	"github.com/DmitryMustk/artdistrict/internal/platform/constants"
	"github.com/DmitryMustk/artdistrict/internal/platform/sec"
	"github.com/DmitryMustk/artdistrict/internal/platform/validate"
	"github.com/DmitryMustk/artdistrict/pkg/uuidv7"
)

// TokenProvider defines the contract for minting signed access tokens.
type TokenProvider interface {
	GenerateAccessToken(input sec.TokenInput, timeToLive time.Duration) (string, error)
}

// Service implements account registration and session use cases.
type Service struct {
	userRepository         UserRepository
	refreshTokenRepository RefreshTokenRepository
	tokenProvider          TokenProvider
	logger                 *slog.Logger
}

func NewService(
	userRepo UserRepository,
	refreshRepo RefreshTokenRepository,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:         userRepo,
		refreshTokenRepository: refreshRepo,
		tokenProvider:          tokenProv,
		logger:                 logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
//
// Role selects the marketplace identity created alongside the account:
// artists get a draft profile, providers get an organization record.
// Staff roles are never self-service.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

// Register validates, hashes, and persists a new account with its identity.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).MinLen(FieldUsername, input.Username, 3).MaxLen(FieldUsername, input.Username, 50)
	validator.Email(FieldEmail, input.Email)
	validator.MinLen(FieldPassword, input.Password, 10)
	validator.OneOf(FieldRole, input.Role, string(authz.RoleArtist), string(authz.RoleProvider))
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 200)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Client-safe Conflict instead of a unique-violation surprise later.
	if _, err := service.userRepository.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}
	if _, err := service.userRepository.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth: password hashing failed: %w", err)
	}

	user := &User{
		ID:           uuidv7.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Roles:        []authz.Role{authz.Role(input.Role)},
	}

	if err := service.userRepository.Create(ctx, CreateInput{User: user, Name: input.Name}); err != nil {
		return nil, err
	}

	service.logger.Info("account_registered",
		slog.String("user_id", user.ID),
		slog.String("role", input.Role),
	)
	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string `json:"login"` // Username or email
	Password string `json:"password"`
}

// Session represents a successfully established login.
type Session struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"-"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	User                  *User     `json:"user"`
}

// Login validates credentials and issues an access/refresh token pair.
func (service *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	user, err := service.userRepository.FindByEmail(ctx, input.Login)
	if err != nil {
		user, err = service.userRepository.FindByUsername(ctx, input.Login)
	}
	// Generic message either way to prevent account enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	session, err := service.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	service.logger.Info("account_logged_in", slog.String("user_id", user.ID))
	return session, nil
}

// Logout invalidates a refresh token. Idempotent: an unknown token is
// already logged out.
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	return service.refreshTokenRepository.Delete(ctx, sec.HashToken(refreshToken))
}

// Refresh rotates a refresh token: the presented token is invalidated and a
// fresh pair is issued, so a replayed token fails on its second use.
func (service *Service) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	tokenHash := sec.HashToken(refreshToken)

	userID, err := service.refreshTokenRepository.Get(ctx, tokenHash)
	if err != nil {
		return nil, err
	}

	if err := service.refreshTokenRepository.Delete(ctx, tokenHash); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Unauthorized("Account no longer exists")
	}

	return service.issueTokens(ctx, user)
}

// issueTokens mints the signed access token and stores a fresh refresh token
// digest in the volatile store.
func (service *Service) issueTokens(ctx context.Context, user *User) (*Session, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(sec.TokenInput{
		UserID:     user.ID,
		Username:   user.Username,
		Roles:      rolesToStrings(user.Roles),
		ArtistID:   user.ArtistID,
		ProviderID: user.ProviderID,
	}, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth: access token generation failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth: refresh token generation failed: %w", err)
	}

	expiresAt := time.Now().Add(constants.RefreshTokenTTL)
	if err := service.refreshTokenRepository.Set(ctx, sec.HashToken(refreshToken), user.ID, constants.RefreshTokenTTL); err != nil {
		return nil, err
	}

	return &Session{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}
