// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package moderation

import "context"

// Store is the persistence contract for the moderation lifecycle.
//
// # Atomicity
//
// Every mutating method performs its current-state read, legality check, and
// state write as one atomic unit (a row-locked transaction in the PostgreSQL
// implementation). Typed failures cross the boundary unchanged:
// NOT_FOUND when the id does not resolve, FORBIDDEN when the caller does not
// own the entity, INVALID_TRANSITION when the lifecycle edge is illegal.
type Store interface {
	// Submit moves an owned entity onto the review queue. ownerArtistID is
	// compared against the entity's owner inside the same transaction.
	Submit(ctx context.Context, kind EntityKind, id, ownerArtistID string) error

	// Resolve records a moderator decision on an entity currently under
	// review, stamping the comment and moderator attribution.
	Resolve(ctx context.Context, kind EntityKind, id string, decision Status, comment, moderatorID string) error

	// SetBanned flips the administrator-only visibility override. Legal from
	// any moderation status; it never touches the lifecycle.
	SetBanned(ctx context.Context, kind EntityKind, id string, banned bool) error

	// ListQueue returns one window of entities awaiting review plus the
	// total count under the same predicate, taken from one snapshot.
	ListQueue(ctx context.Context, kind EntityKind, order SortOrder, limit, offset int) ([]*QueueItem, int, error)

	// ListBanned returns one window of banned entities plus the total count.
	ListBanned(ctx context.Context, kind EntityKind, order SortOrder, limit, offset int) ([]*QueueItem, int, error)
}
