// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package project_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DmitryMustk/artdistrict/internal/core/project"
	"github.com/DmitryMustk/artdistrict/internal/moderation"
	"github.com/DmitryMustk/artdistrict/internal/platform/apperr"
	"github.com/DmitryMustk/artdistrict/internal/platform/authz"
	"github.com/DmitryMustk/artdistrict/pkg/pointer"
)

type fakeRepo struct {
	projects map[string]*project.Project
	nextID   int
}

func (repo *fakeRepo) Create(ctx context.Context, p *project.Project) error {
	repo.nextID++
	p.ID = fmt.Sprintf("p%d", repo.nextID)
	p.Status = moderation.StatusDraft
	stored := *p
	repo.projects[p.ID] = &stored
	return nil
}

func (repo *fakeRepo) Get(ctx context.Context, id string) (*project.Project, error) {
	p, ok := repo.projects[id]
	if !ok {
		return nil, apperr.NotFound("Project")
	}
	copied := *p
	return &copied, nil
}

func (repo *fakeRepo) Update(ctx context.Context, p *project.Project) error {
	stored, ok := repo.projects[p.ID]
	if !ok {
		return apperr.NotFound("Project")
	}
	stored.Title = p.Title
	stored.Description = p.Description
	stored.Budget = p.Budget
	stored.AttachmentIDs = p.AttachmentIDs
	return nil
}

func (repo *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := repo.projects[id]; !ok {
		return apperr.NotFound("Project")
	}
	delete(repo.projects, id)
	return nil
}

func (repo *fakeRepo) SetHidden(ctx context.Context, id string, hidden bool) error {
	p, ok := repo.projects[id]
	if !ok {
		return apperr.NotFound("Project")
	}
	p.Hidden = hidden
	return nil
}

func (repo *fakeRepo) ListPublic(ctx context.Context, f project.Filter, limit, offset int) ([]*project.Project, int, error) {
	var out []*project.Project
	for _, p := range repo.projects {
		if p.Status == moderation.StatusApproved && !p.Banned && !p.Hidden {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (repo *fakeRepo) ListOwned(ctx context.Context, artistID string, limit, offset int) ([]*project.Project, int, error) {
	var out []*project.Project
	for _, p := range repo.projects {
		if p.ArtistID == artistID {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func newService(repo *fakeRepo) *project.Service {
	return project.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func owner(artistID string) *authz.Actor {
	return &authz.Actor{ID: "acc-1", Roles: []authz.Role{authz.RoleArtist}, ArtistID: pointer.To(artistID)}
}

/*
TestService_Create starts every new project in draft.
*/
func TestService_Create(t *testing.T) {
	repo := &fakeRepo{projects: map[string]*project.Project{}}
	service := newService(repo)

	p, err := service.Create(context.Background(), owner("artist-1"), project.Input{Title: "Mural series"})
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusDraft, p.Status)
	assert.Equal(t, "artist-1", p.ArtistID)

	_, err = service.Create(context.Background(), owner("artist-1"), project.Input{Title: ""})
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))

	// Attachment list is capped at ten
	tooMany := make([]string, 11)
	_, err = service.Create(context.Background(), owner("artist-1"), project.Input{Title: "Overloaded", AttachmentIDs: tooMany})
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
}

/*
TestService_Ownership verifies that mutation of someone else's project is
Forbidden and leaves the row untouched.
*/
func TestService_Ownership(t *testing.T) {
	repo := &fakeRepo{projects: map[string]*project.Project{
		"p1": {ID: "p1", ArtistID: "artist-1", Title: "Original", Status: moderation.StatusDraft},
	}}
	service := newService(repo)
	ctx := context.Background()
	stranger := owner("artist-2")

	_, err := service.Update(ctx, stranger, "p1", project.Input{Title: "Hijacked"})
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))
	assert.Equal(t, "Original", repo.projects["p1"].Title)

	err = service.Delete(ctx, stranger, "p1")
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))
	assert.Contains(t, repo.projects, "p1")

	err = service.SetHidden(ctx, stranger, "p1", true)
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))
	assert.False(t, repo.projects["p1"].Hidden)
}

/*
TestService_HiddenOrthogonality verifies the hidden toggle leaves the
moderation status alone and removes the project from public reads.
*/
func TestService_HiddenOrthogonality(t *testing.T) {
	repo := &fakeRepo{projects: map[string]*project.Project{
		"p1": {ID: "p1", ArtistID: "artist-1", Title: "Zine", Status: moderation.StatusApproved},
	}}
	service := newService(repo)
	ctx := context.Background()

	require.NoError(t, service.SetHidden(ctx, owner("artist-1"), "p1", true))
	assert.Equal(t, moderation.StatusApproved, repo.projects["p1"].Status)

	// Hidden project gone from public reads, still visible to the owner
	_, err := service.Get(ctx, nil, "p1")
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))

	p, err := service.Get(ctx, owner("artist-1"), "p1")
	require.NoError(t, err)
	assert.True(t, p.Hidden)

	public, total, err := service.ListPublic(ctx, project.Filter{}, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, public)
	assert.Zero(t, total)
}

/*
TestService_Update_KeepsModeration verifies a content edit never moves a
project along a lifecycle edge.
*/
func TestService_Update_KeepsModeration(t *testing.T) {
	repo := &fakeRepo{projects: map[string]*project.Project{
		"p1": {
			ID: "p1", ArtistID: "artist-1", Title: "Zine",
			Status:            moderation.StatusDenied,
			ModerationComment: pointer.To("Needs more detail"),
		},
	}}
	service := newService(repo)

	_, err := service.Update(context.Background(), owner("artist-1"), "p1", project.Input{Title: "Zine, expanded"})
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusDenied, repo.projects["p1"].Status)
}
