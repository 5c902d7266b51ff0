// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package guide

import (
	"context"
	"log/slog"

	"github.com/DmitryMustk/artdistrict/internal/platform/authz"
	"github.com/DmitryMustk/artdistrict/internal/platform/validate"
	"github.com/DmitryMustk/artdistrict/pkg/slug"
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

// List returns guides for public reading.
func (service *Service) List(ctx context.Context, limit, offset int) ([]*Guide, int, error) {
	return service.repo.List(ctx, limit, offset)
}

// Get returns one guide by id or slug.
func (service *Service) Get(ctx context.Context, idOrSlug string) (*Guide, error) {
	return service.repo.Get(ctx, idOrSlug)
}

// Create adds a guide. Content manager only.
func (service *Service) Create(ctx context.Context, actor *authz.Actor, input Input) (*Guide, error) {
	if err := authz.RequireRole(actor, authz.RoleContentManager); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	guideSlug := input.Slug
	if guideSlug == "" {
		guideSlug = slug.From(input.Title)
	}

	g := &Guide{
		Slug:     guideSlug,
		Title:    input.Title,
		Body:     input.Body,
		Resource: input.Resource,
	}
	if err := service.repo.Create(ctx, g); err != nil {
		return nil, err
	}

	service.logger.Info("guide_created",
		slog.String("guide_id", g.ID),
		slog.String("slug", g.Slug),
	)
	return g, nil
}

// Update edits a guide. The slug is fixed at creation.
func (service *Service) Update(ctx context.Context, actor *authz.Actor, id string, input Input) (*Guide, error) {
	if err := authz.RequireRole(actor, authz.RoleContentManager); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	g, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	g.Title = input.Title
	g.Body = input.Body
	g.Resource = input.Resource

	if err := service.repo.Update(ctx, g); err != nil {
		return nil, err
	}

	service.logger.Info("guide_updated", slog.String("guide_id", g.ID))
	return g, nil
}

// Delete removes a guide. Content manager only.
func (service *Service) Delete(ctx context.Context, actor *authz.Actor, id string) error {
	if err := authz.RequireRole(actor, authz.RoleContentManager); err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("guide_deleted", slog.String("guide_id", id))
	return nil
}

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 200)
	if input.Slug != "" {
		validator.Slug(FieldSlug, input.Slug)
	}
	validator.Required(FieldBody, input.Body)
	validator.Custom(FieldResource, input.Resource.Resource == nil, "This field is required")

	if link, ok := input.Resource.Resource.(Link); ok {
		validator.URL(FieldResource, link.URL)
	}
	if file, ok := input.Resource.Resource.(File); ok {
		validator.Custom(FieldResource, file.FileID == "", "File resource requires a file id")
	}
	return validator.Err()
}
