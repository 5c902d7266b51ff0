// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package artist_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DmitryMustk/artdistrict/internal/core/artist"
	"github.com/DmitryMustk/artdistrict/internal/moderation"
	"github.com/DmitryMustk/artdistrict/internal/platform/apperr"
	"github.com/DmitryMustk/artdistrict/internal/platform/authz"
	"github.com/DmitryMustk/artdistrict/pkg/pointer"
)

type fakeRepo struct {
	artists map[string]*artist.Artist
}

func (repo *fakeRepo) ListPublic(ctx context.Context, f artist.Filter, limit, offset int) ([]*artist.Artist, int, error) {
	var out []*artist.Artist
	for _, a := range repo.artists {
		if a.Status == moderation.StatusApproved && !a.Banned {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (repo *fakeRepo) Get(ctx context.Context, id string) (*artist.Artist, error) {
	a, ok := repo.artists[id]
	if !ok {
		return nil, apperr.NotFound("Artist")
	}
	copied := *a
	return &copied, nil
}

func (repo *fakeRepo) GetByUserID(ctx context.Context, userID string) (*artist.Artist, error) {
	for _, a := range repo.artists {
		if a.UserID == userID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Artist")
}

func (repo *fakeRepo) Update(ctx context.Context, a *artist.Artist) error {
	stored, ok := repo.artists[a.ID]
	if !ok {
		return apperr.NotFound("Artist")
	}
	// Mirrors the SQL: only content columns move.
	stored.Name = a.Name
	stored.Bio = a.Bio
	stored.Country = a.Country
	stored.Industries = a.Industries
	return nil
}

func newService(repo *fakeRepo) *artist.Service {
	return artist.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func owner(artistID string) *authz.Actor {
	return &authz.Actor{ID: "acc-1", Roles: []authz.Role{authz.RoleArtist}, ArtistID: pointer.To(artistID)}
}

/*
TestService_Get_Visibility verifies the public visibility predicate and the
owner/staff exceptions. A profile outside the predicate reads as absent to
everyone else.
*/
func TestService_Get_Visibility(t *testing.T) {
	repo := &fakeRepo{artists: map[string]*artist.Artist{
		"a1": {ID: "a1", UserID: "u1", Name: "Mira", Status: moderation.StatusDenied},
		"a2": {ID: "a2", UserID: "u2", Name: "Jun", Status: moderation.StatusApproved, Banned: true},
		"a3": {ID: "a3", UserID: "u3", Name: "Eve", Status: moderation.StatusApproved},
	}}
	service := newService(repo)
	ctx := context.Background()

	// Approved and unbanned: visible anonymously
	got, err := service.Get(ctx, nil, "a3")
	require.NoError(t, err)
	assert.Equal(t, "Eve", got.Name)

	// Denied: absent to strangers, visible to the owner and to moderators
	_, err = service.Get(ctx, nil, "a1")
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))

	got, err = service.Get(ctx, owner("a1"), "a1")
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusDenied, got.Status)

	mod := &authz.Actor{ID: "m", Roles: []authz.Role{authz.RoleModerator}}
	_, err = service.Get(ctx, mod, "a1")
	assert.NoError(t, err)

	// Banned: absent even though approved
	_, err = service.Get(ctx, owner("a3"), "a2")
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

/*
TestService_UpdateMine_KeepsStatus verifies that a content edit never moves
the profile along a lifecycle edge and never clears reviewer feedback.
*/
func TestService_UpdateMine_KeepsStatus(t *testing.T) {
	repo := &fakeRepo{artists: map[string]*artist.Artist{
		"a1": {
			ID: "a1", UserID: "u1", Name: "Mira",
			Status:            moderation.StatusDenied,
			ModerationComment: pointer.To("Bio is empty"),
		},
	}}
	service := newService(repo)

	updated, err := service.UpdateMine(context.Background(), owner("a1"), artist.Input{
		Name: "Mira K.",
		Bio:  pointer.To("Printmaker based in Lisbon"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Mira K.", updated.Name)

	stored := repo.artists["a1"]
	assert.Equal(t, moderation.StatusDenied, stored.Status)
	require.NotNil(t, stored.ModerationComment)
	assert.Equal(t, "Bio is empty", *stored.ModerationComment)
}

/*
TestService_UpdateMine_Guard verifies role and identity requirements.
*/
func TestService_UpdateMine_Guard(t *testing.T) {
	service := newService(&fakeRepo{artists: map[string]*artist.Artist{}})
	ctx := context.Background()

	_, err := service.UpdateMine(ctx, nil, artist.Input{Name: "X"})
	assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))

	provider := &authz.Actor{ID: "p", Roles: []authz.Role{authz.RoleProvider}}
	_, err = service.UpdateMine(ctx, provider, artist.Input{Name: "X"})
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))
}

/*
TestService_UpdateMine_Validation checks the field rules.
*/
func TestService_UpdateMine_Validation(t *testing.T) {
	repo := &fakeRepo{artists: map[string]*artist.Artist{
		"a1": {ID: "a1", UserID: "u1", Name: "Mira", Status: moderation.StatusDraft},
	}}
	service := newService(repo)

	_, err := service.UpdateMine(context.Background(), owner("a1"), artist.Input{Name: ""})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
}
