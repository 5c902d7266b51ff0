// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package opportunity_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DmitryMustk/artdistrict/internal/core/opportunity"
	"github.com/DmitryMustk/artdistrict/internal/platform/apperr"
	"github.com/DmitryMustk/artdistrict/internal/platform/authz"
	"github.com/DmitryMustk/artdistrict/pkg/pointer"
)

type fakeRepo struct {
	opportunities map[string]*opportunity.Opportunity
	applications  map[string]*opportunity.Application
	nextID        int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		opportunities: map[string]*opportunity.Opportunity{},
		applications:  map[string]*opportunity.Application{},
	}
}

func (repo *fakeRepo) Create(ctx context.Context, o *opportunity.Opportunity) error {
	repo.nextID++
	o.ID = fmt.Sprintf("o%d", repo.nextID)
	stored := *o
	repo.opportunities[o.ID] = &stored
	return nil
}

func (repo *fakeRepo) Get(ctx context.Context, id string) (*opportunity.Opportunity, error) {
	o, ok := repo.opportunities[id]
	if !ok {
		return nil, apperr.NotFound("Opportunity")
	}
	copied := *o
	return &copied, nil
}

func (repo *fakeRepo) GetBySlug(ctx context.Context, slug string) (*opportunity.Opportunity, error) {
	for _, o := range repo.opportunities {
		if o.Slug == slug {
			copied := *o
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Opportunity")
}

func (repo *fakeRepo) Update(ctx context.Context, o *opportunity.Opportunity) error {
	stored, ok := repo.opportunities[o.ID]
	if !ok {
		return apperr.NotFound("Opportunity")
	}
	stored.Title = o.Title
	stored.Description = o.Description
	stored.Deadline = o.Deadline
	return nil
}

func (repo *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := repo.opportunities[id]; !ok {
		return apperr.NotFound("Opportunity")
	}
	delete(repo.opportunities, id)
	return nil
}

func (repo *fakeRepo) SetBanned(ctx context.Context, id string, banned bool) error {
	o, ok := repo.opportunities[id]
	if !ok {
		return apperr.NotFound("Opportunity")
	}
	o.Banned = banned
	return nil
}

func (repo *fakeRepo) ListOpen(ctx context.Context, f opportunity.Filter, limit, offset int) ([]*opportunity.Opportunity, int, error) {
	var out []*opportunity.Opportunity
	for _, o := range repo.opportunities {
		if !o.Banned && o.Deadline.After(time.Now()) {
			out = append(out, o)
		}
	}
	return out, len(out), nil
}

func (repo *fakeRepo) ListOwned(ctx context.Context, providerID string, limit, offset int) ([]*opportunity.Opportunity, int, error) {
	var out []*opportunity.Opportunity
	for _, o := range repo.opportunities {
		if o.ProviderID == providerID {
			out = append(out, o)
		}
	}
	return out, len(out), nil
}

func (repo *fakeRepo) CreateApplication(ctx context.Context, a *opportunity.Application) error {
	for _, existing := range repo.applications {
		if existing.OpportunityID == a.OpportunityID && existing.ArtistID == a.ArtistID {
			return apperr.Conflict("Already applied")
		}
	}
	repo.nextID++
	a.ID = fmt.Sprintf("ap%d", repo.nextID)
	a.Status = opportunity.ApplicationApplied
	stored := *a
	repo.applications[a.ID] = &stored
	return nil
}

func (repo *fakeRepo) ListApplications(ctx context.Context, opportunityID string, limit, offset int) ([]*opportunity.Application, int, error) {
	var out []*opportunity.Application
	for _, a := range repo.applications {
		if a.OpportunityID == opportunityID {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (repo *fakeRepo) GetApplication(ctx context.Context, id string) (*opportunity.Application, error) {
	a, ok := repo.applications[id]
	if !ok {
		return nil, apperr.NotFound("Application")
	}
	copied := *a
	return &copied, nil
}

func (repo *fakeRepo) SetApplicationStatus(ctx context.Context, id string, status opportunity.ApplicationStatus) error {
	a, ok := repo.applications[id]
	if !ok {
		return apperr.NotFound("Application")
	}
	a.Status = status
	return nil
}

func newService(repo *fakeRepo) *opportunity.Service {
	return opportunity.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func providerActor(providerID string) *authz.Actor {
	return &authz.Actor{ID: "acc-p", Roles: []authz.Role{authz.RoleProvider}, ProviderID: pointer.To(providerID)}
}

func artistActor(artistID string) *authz.Actor {
	return &authz.Actor{ID: "acc-a", Roles: []authz.Role{authz.RoleArtist}, ArtistID: pointer.To(artistID)}
}

/*
TestService_Create covers provider gating, deadline validation, and slug
assignment from the title.
*/
func TestService_Create(t *testing.T) {
	repo := newFakeRepo()
	service := newService(repo)
	ctx := context.Background()
	future := time.Now().Add(30 * 24 * time.Hour)

	o, err := service.Create(ctx, providerActor("prov-1"), opportunity.Input{
		Title:    "Mural Commission, Berlin",
		Deadline: future,
	})
	require.NoError(t, err)
	assert.Equal(t, "prov-1", o.ProviderID)
	assert.Equal(t, "mural-commission-berlin", o.Slug)

	// Past deadline
	_, err = service.Create(ctx, providerActor("prov-1"), opportunity.Input{
		Title:    "Expired",
		Deadline: time.Now().Add(-time.Hour),
	})
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))

	// Artists cannot post
	_, err = service.Create(ctx, artistActor("artist-1"), opportunity.Input{Title: "X", Deadline: future})
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))
}

/*
TestService_Apply covers the happy path, the one-application rule, and the
closed listing cases.
*/
func TestService_Apply(t *testing.T) {
	repo := newFakeRepo()
	repo.opportunities["o1"] = &opportunity.Opportunity{
		ID: "o1", ProviderID: "prov-1", Title: "Residency", Deadline: time.Now().Add(time.Hour),
	}
	repo.opportunities["o2"] = &opportunity.Opportunity{
		ID: "o2", ProviderID: "prov-1", Title: "Closed", Deadline: time.Now().Add(-time.Hour),
	}
	repo.opportunities["o3"] = &opportunity.Opportunity{
		ID: "o3", ProviderID: "prov-1", Title: "Banned", Deadline: time.Now().Add(time.Hour), Banned: true,
	}
	service := newService(repo)
	ctx := context.Background()
	applicant := artistActor("artist-1")

	a, err := service.Apply(ctx, applicant, "o1", opportunity.ApplicationInput{Message: "Portfolio attached"})
	require.NoError(t, err)
	assert.Equal(t, opportunity.ApplicationApplied, a.Status)
	assert.Equal(t, "artist-1", a.ArtistID)

	// Second application by the same artist
	_, err = service.Apply(ctx, applicant, "o1", opportunity.ApplicationInput{Message: "Again"})
	assert.True(t, apperr.IsCode(err, "CONFLICT"))

	// Expired and banned opportunities do not accept applications
	_, err = service.Apply(ctx, applicant, "o2", opportunity.ApplicationInput{Message: "Late"})
	assert.True(t, apperr.IsCode(err, "UNPROCESSABLE"))
	_, err = service.Apply(ctx, applicant, "o3", opportunity.ApplicationInput{Message: "Hm"})
	assert.True(t, apperr.IsCode(err, "UNPROCESSABLE"))

	// Providers cannot apply
	_, err = service.Apply(ctx, providerActor("prov-2"), "o1", opportunity.ApplicationInput{Message: "No"})
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

	// A linked pitch must carry a well-formed id
	badID := "not-a-uuid"
	_, err = service.Apply(ctx, artistActor("artist-2"), "o1", opportunity.ApplicationInput{Message: "With pitch", ProjectID: &badID})
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
}

/*
TestService_ResolveApplication verifies the provider-ownership chain from
application to opportunity.
*/
func TestService_ResolveApplication(t *testing.T) {
	repo := newFakeRepo()
	repo.opportunities["o1"] = &opportunity.Opportunity{
		ID: "o1", ProviderID: "prov-1", Deadline: time.Now().Add(time.Hour),
	}
	repo.applications["ap1"] = &opportunity.Application{
		ID: "ap1", OpportunityID: "o1", ArtistID: "artist-1", Status: opportunity.ApplicationApplied,
	}
	service := newService(repo)
	ctx := context.Background()

	// Another provider cannot resolve
	err := service.ResolveApplication(ctx, providerActor("prov-2"), "ap1", opportunity.ApplicationAccepted)
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

	// Applied is not a resolution
	err = service.ResolveApplication(ctx, providerActor("prov-1"), "ap1", opportunity.ApplicationApplied)
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))

	require.NoError(t, service.ResolveApplication(ctx, providerActor("prov-1"), "ap1", opportunity.ApplicationAccepted))
	assert.Equal(t, opportunity.ApplicationAccepted, repo.applications["ap1"].Status)
}

/*
TestService_Get_Visibility verifies banned and expired opportunities read as
absent to everyone but the owner and administrators.
*/
func TestService_Get_Visibility(t *testing.T) {
	repo := newFakeRepo()
	repo.opportunities["o1"] = &opportunity.Opportunity{
		ID: "o1", ProviderID: "prov-1", Slug: "closed-call", Deadline: time.Now().Add(-time.Hour),
	}
	service := newService(repo)
	ctx := context.Background()

	_, err := service.Get(ctx, nil, "closed-call")
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))

	o, err := service.Get(ctx, providerActor("prov-1"), "closed-call")
	require.NoError(t, err)
	assert.Equal(t, "o1", o.ID)

	admin := &authz.Actor{ID: "adm", Roles: []authz.Role{authz.RoleAdministrator}}
	_, err = service.Get(ctx, admin, "o1")
	assert.NoError(t, err)
}
