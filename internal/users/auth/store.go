// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// CreateInput carries everything the registration transaction persists.
//
// Name seeds the marketplace identity row: the draft artist profile or the
// provider organization record, depending on the chosen role.
type CreateInput struct {
	User *User
	Name string
}

// UserRepository defines the data access contract for accounts.
//
// Create is transactional: the account row and its identity row (artist
// profile or provider record) commit together or not at all, and the
// created identity id is written back onto the user.
type UserRepository interface {
	Create(ctx context.Context, input CreateInput) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	UpdatePassword(ctx context.Context, userID, newHash string) error
}

// # Refresh Token Data Access

// RefreshTokenRepository defines the contract for the volatile refresh-token
// store. Tokens are keyed by digest, never by value.
type RefreshTokenRepository interface {
	Set(ctx context.Context, tokenHash, userID string, ttl time.Duration) error
	Get(ctx context.Context, tokenHash string) (string, error)
	Delete(ctx context.Context, tokenHash string) error
}
