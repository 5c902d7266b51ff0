// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

/*
Package project manages moderated artist projects.

A project is owned by exactly one artist and moves through the same
moderation lifecycle as the artist profile. On top of the lifecycle the
owner controls a hidden toggle that withdraws an approved project from
public listings without touching its moderation status.
*/
package project

import (
	"time"

	"github.com/DmitryMustk/artdistrict/internal/moderation"
)

// Project is a moderated portfolio item owned by one artist.
//
// Applications is the number of opportunity applications the project is
// attached to. It is surfaced so owners see what a destructive edit would
// orphan; it is never stored, always counted.
type Project struct {
	ID       string `json:"id"`
	ArtistID string `json:"artist_id"`

	Title       string  `json:"title"`
	Description *string `json:"description"`
	Budget      *int    `json:"budget"`

	// Opaque storage tokens; content validation is out of scope here.
	AttachmentIDs []string `json:"attachment_ids"`

	Hidden bool `json:"hidden"`

	Status            moderation.Status `json:"status"`
	ModerationComment *string           `json:"moderation_comment,omitempty"`
	ModeratorID       *string           `json:"-"`
	Banned            bool              `json:"-"`

	Applications int `json:"applications"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input carries the owner-editable project fields.
type Input struct {
	Title         string   `json:"title"`
	Description   *string  `json:"description"`
	Budget        *int     `json:"budget"`
	AttachmentIDs []string `json:"attachment_ids"`
}

// Filter holds the parameters for a paginated public project search.
type Filter struct {
	Query    string
	ArtistID string
}

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldBudget      = "budget"
	FieldAttachments = "attachment_ids"
)
