// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

/*
Package auth implements account identity for the marketplace.

It covers registration with role selection (artist or provider), login,
and rotating Redis-backed refresh tokens. Access tokens are RS256 JWTs
carrying the roles claim and the actor's identity links, so the rest of
the API never reads identity from storage on a request path.
*/
package auth

import (
	"time"

	"github.com/DmitryMustk/artdistrict/internal/platform/authz"
)

// # Domain Entities

// User represents a registered account.
//
// ArtistID and ProviderID link the account to its marketplace identity;
// they are fixed at registration.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Roles        []authz.Role `json:"roles"`
	ArtistID     *string      `json:"artist_id,omitempty"`
	ProviderID   *string      `json:"provider_id,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldRole     = "role"
	FieldName     = "name"
	FieldLogin    = "login"
)
