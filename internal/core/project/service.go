// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package project

import (
	"context"
	"log/slog"

	"github.com/DmitryMustk/artdistrict/internal/moderation"
	"github.com/DmitryMustk/artdistrict/internal/platform/apperr"
	"github.com/DmitryMustk/artdistrict/internal/platform/authz"
	"github.com/DmitryMustk/artdistrict/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create adds a new project in draft for the actor's artist identity.
func (service *Service) Create(ctx context.Context, actor *authz.Actor, input Input) (*Project, error) {
	if err := authz.RequireRole(actor, authz.RoleArtist); err != nil {
		return nil, err
	}
	artistID, err := authz.RequireArtistIdentity(actor)
	if err != nil {
		return nil, err
	}

	if err := validateInput(input); err != nil {
		return nil, err
	}

	p := &Project{
		ArtistID:      artistID,
		Title:         input.Title,
		Description:   input.Description,
		Budget:        input.Budget,
		AttachmentIDs: input.AttachmentIDs,
	}
	if err := service.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	service.logger.Info("project_created",
		slog.String("project_id", p.ID),
		slog.String("artist_id", artistID),
	)
	return p, nil
}

// Get returns a single project under the same visibility rules as artist
// profiles, with the hidden toggle additionally restricted to the owner.
func (service *Service) Get(ctx context.Context, actor *authz.Actor, id string) (*Project, error) {
	p, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Status == moderation.StatusApproved && !p.Banned && !p.Hidden {
		return p, nil
	}
	if service.canSeeUnlisted(actor, p) {
		return p, nil
	}
	return nil, apperr.NotFound("Project")
}

// Update applies a content edit to an owned project. The edit never changes
// moderation status or the hidden flag.
//
// Projects already attached to applications still accept edits; the caller
// sees the live application count on the returned project and decides.
func (service *Service) Update(ctx context.Context, actor *authz.Actor, id string, input Input) (*Project, error) {
	p, err := service.requireOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := validateInput(input); err != nil {
		return nil, err
	}

	p.Title = input.Title
	p.Description = input.Description
	p.Budget = input.Budget
	p.AttachmentIDs = input.AttachmentIDs

	if err := service.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	service.logger.Info("project_updated", slog.String("project_id", p.ID))
	return p, nil
}

// Delete removes an owned project.
func (service *Service) Delete(ctx context.Context, actor *authz.Actor, id string) error {
	p, err := service.requireOwned(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, p.ID); err != nil {
		return err
	}

	service.logger.Warn("project_deleted",
		slog.String("project_id", p.ID),
		slog.Int("orphaned_applications", p.Applications),
	)
	return nil
}

// SetHidden flips the owner's visibility toggle.
func (service *Service) SetHidden(ctx context.Context, actor *authz.Actor, id string, hidden bool) error {
	p, err := service.requireOwned(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := service.repo.SetHidden(ctx, p.ID, hidden); err != nil {
		return err
	}

	service.logger.Info("project_hidden_updated",
		slog.String("project_id", p.ID),
		slog.Bool("hidden", hidden),
	)
	return nil
}

// ListPublic returns approved, unbanned, unhidden projects. No actor required.
func (service *Service) ListPublic(ctx context.Context, filter Filter, limit, offset int) ([]*Project, int, error) {
	return service.repo.ListPublic(ctx, filter, limit, offset)
}

// ListMine returns every project of the actor's artist identity.
func (service *Service) ListMine(ctx context.Context, actor *authz.Actor, limit, offset int) ([]*Project, int, error) {
	artistID, err := authz.RequireArtistIdentity(actor)
	if err != nil {
		return nil, 0, err
	}
	return service.repo.ListOwned(ctx, artistID, limit, offset)
}

// requireOwned loads the project and verifies the actor's artist identity
// owns it. Ownership failures read as Forbidden, not NotFound, because the
// caller already proved they can name the id.
func (service *Service) requireOwned(ctx context.Context, actor *authz.Actor, id string) (*Project, error) {
	if err := authz.RequireRole(actor, authz.RoleArtist); err != nil {
		return nil, err
	}
	artistID, err := authz.RequireArtistIdentity(actor)
	if err != nil {
		return nil, err
	}

	p, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.ArtistID != artistID {
		return nil, apperr.Forbidden("Only the owner may modify this project")
	}
	return p, nil
}

func (service *Service) canSeeUnlisted(actor *authz.Actor, p *Project) bool {
	if actor == nil {
		return false
	}
	if actor.ArtistID != nil && *actor.ArtistID == p.ArtistID {
		return true
	}
	return actor.HasRole(authz.RoleModerator) || actor.HasRole(authz.RoleAdministrator)
}

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 200)
	if input.Description != nil {
		validator.MaxLen(FieldDescription, *input.Description, 10000)
	}
	if input.Budget != nil {
		validator.Custom(FieldBudget, *input.Budget < 0, "Must not be negative")
	}
	validator.Range(FieldAttachments, len(input.AttachmentIDs), 0, 10)
	return validator.Err()
}
