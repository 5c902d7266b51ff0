// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

// Package authz defines the role model and the authorization guard that gates
// every mutating or sensitive read operation in the marketplace core.
//
// # Architecture
//
//   - Roles form a closed set, not a hierarchy: holding moderator says nothing
//     about administrator. Membership is the only predicate.
//   - The guard is pure: it never touches the store, so a failed check always
//     aborts an operation before any mutation is attempted.
//   - Ownership checks (e.g. "does this actor's artist identity own the
//     project?") are layered per-operation in services, because different
//     operations have different ownership semantics.
package authz

import "github.com/DmitryMustk/artdistrict/internal/platform/apperr"

// # Roles

// Role represents a capability grant attached to an account.
type Role string

const (
	// Maintains a moderated artist profile and projects
	RoleArtist Role = "artist"

	// Posts opportunities and reviews applicants
	RoleProvider Role = "provider"

	// Bans entities and manages accounts
	RoleAdministrator Role = "administrator"

	// Works the review queue and resolves pending submissions
	RoleModerator Role = "moderator"

	// Maintains guides, news, and static pages
	RoleContentManager Role = "content-manager"
)

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleArtist, RoleProvider, RoleAdministrator, RoleModerator, RoleContentManager:
		return true
	}
	return false
}

// # Actor

// Actor is a signed-in principal carrying zero or more roles.
//
// Role and identity are orthogonal: a moderator is not necessarily an artist.
// ArtistID/ProviderID link the account to at most one artist identity and at
// most one provider identity; nil means the actor holds no such identity.
//
// Actors are resolved once per request from JWT claims and passed explicitly
// to every core operation. Nothing in the core reads identity from a global.
type Actor struct {
	ID       string
	Username string
	Roles    []Role

	ArtistID   *string
	ProviderID *string
}

// HasRole reports whether the actor holds the given role.
//
// This is the single role-membership predicate for the whole codebase; no
// call site inspects the Roles slice directly.
func (a *Actor) HasRole(role Role) bool {
	if a == nil {
		return false
	}
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// # Guard

// RequireRole fails with [apperr.Forbidden] if the actor is absent or lacks
// the given role.
//
// The check is role-based, not entity-based: it is necessary but not
// sufficient for operations that also demand ownership.
func RequireRole(actor *Actor, role Role) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if !actor.HasRole(role) {
		return apperr.Forbidden("Requires the " + string(role) + " role")
	}
	return nil
}

// RequireArtistIdentity fails unless the actor is linked to an artist
// identity. It returns the artist ID for ownership comparisons.
func RequireArtistIdentity(actor *Actor) (string, error) {
	if actor == nil {
		return "", apperr.Unauthorized("Authentication required")
	}
	if actor.ArtistID == nil || *actor.ArtistID == "" {
		return "", apperr.Forbidden("Requires an artist identity")
	}
	return *actor.ArtistID, nil
}

// RequireProviderIdentity fails unless the actor is linked to a provider
// identity. It returns the provider ID for ownership comparisons.
func RequireProviderIdentity(actor *Actor) (string, error) {
	if actor == nil {
		return "", apperr.Unauthorized("Authentication required")
	}
	if actor.ProviderID == nil || *actor.ProviderID == "" {
		return "", apperr.Forbidden("Requires a provider identity")
	}
	return *actor.ProviderID, nil
}
