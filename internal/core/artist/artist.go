// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

/*
Package artist manages moderated artist profiles.

An artist profile is 1:1 with a user account and carries the moderation
lifecycle fields. A content edit never moves the profile along a lifecycle
edge; only the moderation operations change status.
*/
package artist

import (
	"time"

	"github.com/DmitryMustk/artdistrict/internal/moderation"
)

// Artist is a moderated public profile owned by exactly one user account.
type Artist struct {
	ID     string `json:"id"`
	UserID string `json:"-"`

	Name       string   `json:"name"`
	Bio        *string  `json:"bio"`
	Country    *string  `json:"country"`
	Industries []string `json:"industries"`

	Status            moderation.Status `json:"status"`
	ModerationComment *string           `json:"moderation_comment,omitempty"`
	ModeratorID       *string           `json:"-"`
	Banned            bool              `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input carries the owner-editable profile fields.
type Input struct {
	Name       string   `json:"name"`
	Bio        *string  `json:"bio"`
	Country    *string  `json:"country"`
	Industries []string `json:"industries"`
}

// Filter holds the parameters for a paginated artist search.
type Filter struct {
	Query      string // Substring search against name
	Country    string
	Industries []string // Any-match against the profile's industries
}

const (
	FieldName       = "name"
	FieldBio        = "bio"
	FieldCountry    = "country"
	FieldIndustries = "industries"
)
