// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package moderation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DmitryMustk/artdistrict/internal/moderation"
)

/*
TestCanTransition_EdgeSet exhaustively checks every ordered status pair
against the lifecycle edge set.
*/
func TestCanTransition_EdgeSet(t *testing.T) {
	statuses := []moderation.Status{
		moderation.StatusDraft,
		moderation.StatusOnModeration,
		moderation.StatusApproved,
		moderation.StatusDenied,
	}

	legal := map[moderation.Status]map[moderation.Status]bool{
		moderation.StatusDraft:        {moderation.StatusOnModeration: true},
		moderation.StatusOnModeration: {moderation.StatusApproved: true, moderation.StatusDenied: true},
		moderation.StatusApproved:     {moderation.StatusOnModeration: true},
		moderation.StatusDenied:       {moderation.StatusOnModeration: true},
	}

	for _, from := range statuses {
		for _, to := range statuses {
			got := moderation.CanTransition(from, to)
			assert.Equal(t, legal[from][to], got, "%s -> %s", from, to)
		}
	}
}

/*
TestCanTransition_NoSelfLoops verifies that no status transitions to itself.
*/
func TestCanTransition_NoSelfLoops(t *testing.T) {
	for _, status := range []moderation.Status{
		moderation.StatusDraft,
		moderation.StatusOnModeration,
		moderation.StatusApproved,
		moderation.StatusDenied,
	} {
		assert.False(t, moderation.CanTransition(status, status), "%s should not loop", status)
	}
}

/*
TestCanTransition_UnknownStatus verifies that unknown statuses have no edges
in either direction.
*/
func TestCanTransition_UnknownStatus(t *testing.T) {
	assert.False(t, moderation.CanTransition("archived", moderation.StatusOnModeration))
	assert.False(t, moderation.CanTransition(moderation.StatusDraft, "archived"))
	assert.Empty(t, moderation.AllowedTransitions("archived"))
}

/*
TestAllowedTransitions covers the per-status successor lists.
*/
func TestAllowedTransitions(t *testing.T) {
	assert.ElementsMatch(t,
		[]moderation.Status{moderation.StatusOnModeration},
		moderation.AllowedTransitions(moderation.StatusDraft))
	assert.ElementsMatch(t,
		[]moderation.Status{moderation.StatusApproved, moderation.StatusDenied},
		moderation.AllowedTransitions(moderation.StatusOnModeration))
	assert.ElementsMatch(t,
		[]moderation.Status{moderation.StatusOnModeration},
		moderation.AllowedTransitions(moderation.StatusApproved))
	assert.ElementsMatch(t,
		[]moderation.Status{moderation.StatusOnModeration},
		moderation.AllowedTransitions(moderation.StatusDenied))
}

/*
TestStatusValid checks membership of the closed status set.
*/
func TestStatusValid(t *testing.T) {
	assert.True(t, moderation.StatusDraft.Valid())
	assert.True(t, moderation.StatusOnModeration.Valid())
	assert.True(t, moderation.StatusApproved.Valid())
	assert.True(t, moderation.StatusDenied.Valid())
	assert.False(t, moderation.Status("archived").Valid())
	assert.False(t, moderation.Status("").Valid())
}

/*
TestEntityKindValid checks membership of the moderated collection set.
*/
func TestEntityKindValid(t *testing.T) {
	assert.True(t, moderation.KindArtist.Valid())
	assert.True(t, moderation.KindProject.Valid())
	assert.False(t, moderation.EntityKind("opportunity").Valid())
	assert.False(t, moderation.EntityKind("").Valid())
}
