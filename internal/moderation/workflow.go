// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package moderation

// allowedTransitions is the closed edge set of the moderation lifecycle.
//
// Approved and Denied both accept a resubmit edge back to OnModeration:
// neither is terminal. A content edit never moves an entity along any edge —
// status only changes through the explicit operations in this package.
var allowedTransitions = map[Status][]Status{
	StatusDraft:        {StatusOnModeration},
	StatusOnModeration: {StatusApproved, StatusDenied},
	StatusApproved:     {StatusOnModeration},
	StatusDenied:       {StatusOnModeration},
}

// CanTransition reports whether moving from one status to another is a legal
// lifecycle edge.
func CanTransition(from, to Status) bool {
	allowed, exists := allowedTransitions[from]
	if !exists {
		return false
	}
	for _, allowedTo := range allowed {
		if allowedTo == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the legal next statuses for a given status.
func AllowedTransitions(from Status) []Status {
	allowed, exists := allowedTransitions[from]
	if !exists {
		return []Status{}
	}
	return allowed
}
