// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

/*
Package moderation implements the review lifecycle that gates visibility and
mutation of artist profiles and projects.

# Architecture

  - Workflow: a closed transition table over the four lifecycle statuses.
  - Service: role guards + transition orchestration + decision notifications.
  - Store: atomic read-check-write against PostgreSQL (row lock per entity).

Every mutating operation runs its state check and state write inside one
database transaction, so concurrent decisions on the same entity serialize:
the loser observes a status that already moved and receives an
INVALID_TRANSITION failure instead of silently overwriting the winner.
*/
package moderation

import "time"

// # Lifecycle Statuses

// Status is the moderation lifecycle stage of an artist or project.
type Status string

const (
	// Freshly created, visible only to its owner
	StatusDraft Status = "draft"

	// Submitted by the owner, waiting in the review queue
	StatusOnModeration Status = "on-moderation"

	// Cleared by a moderator for public listings
	StatusApproved Status = "approved"

	// Rejected by a moderator; owner may edit and resubmit
	StatusDenied Status = "denied"
)

// Valid reports whether s is a member of the closed status set.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusOnModeration, StatusApproved, StatusDenied:
		return true
	}
	return false
}

// # Entity Kinds

// EntityKind selects which moderated collection an operation targets.
type EntityKind string

const (
	KindArtist  EntityKind = "artist"
	KindProject EntityKind = "project"
)

// Valid reports whether k names a moderated collection.
func (k EntityKind) Valid() bool {
	return k == KindArtist || k == KindProject
}

// Resource returns the client-facing resource name for error messages.
func (k EntityKind) Resource() string {
	switch k {
	case KindArtist:
		return "Artist"
	case KindProject:
		return "Project"
	}
	return "Entity"
}

// # Queue Types

// SortOrder selects the updated-at ordering of a queue listing.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// QueueItem is the review-queue projection of a moderated entity.
type QueueItem struct {
	ID                string     `json:"id"`
	Kind              EntityKind `json:"kind"`
	Title             string     `json:"title"`
	OwnerArtistID     string     `json:"owner_artist_id"`
	Status            Status     `json:"status"`
	ModerationComment *string    `json:"moderation_comment"`
	ModeratorID       *string    `json:"moderator_id"`
	Banned            bool       `json:"banned"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Query describes one paginated, filtered queue listing.
//
// Kind is optional: an empty kind requests the combined view, which windows
// artists and projects independently (two queries, two totals — never one
// interleaved ranked list).
type Query struct {
	Kind    EntityKind
	Order   SortOrder
	Page    int
	PerPage int
}
