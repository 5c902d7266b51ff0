// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package opportunity

import (
	"context"
	"log/slog"
	"time"

	"github.com/DmitryMustk/artdistrict/internal/platform/apperr"
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

// Create posts a new opportunity for the actor's provider identity.
func (service *Service) Create(ctx context.Context, actor *authz.Actor, input Input) (*Opportunity, error) {
	if err := authz.RequireRole(actor, authz.RoleProvider); err != nil {
		return nil, err
	}
	providerID, err := authz.RequireProviderIdentity(actor)
	if err != nil {
		return nil, err
	}

	if err := validateInput(input); err != nil {
		return nil, err
	}

	o := &Opportunity{
		ProviderID:  providerID,
		Title:       input.Title,
		Slug:        slug.From(input.Title),
		Description: input.Description,
		Deadline:    input.Deadline,
	}
	if err := service.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	service.logger.Info("opportunity_created",
		slog.String("opportunity_id", o.ID),
		slog.String("provider_id", providerID),
		slog.String("slug", o.Slug),
	)
	return o, nil
}

// Get returns one opportunity by id or slug. Banned or expired ones are
// visible only to their provider and to administrators.
func (service *Service) Get(ctx context.Context, actor *authz.Actor, idOrSlug string) (*Opportunity, error) {
	o, err := service.repo.GetBySlug(ctx, idOrSlug)
	if apperr.IsCode(err, "NOT_FOUND") {
		o, err = service.repo.Get(ctx, idOrSlug)
	}
	if err != nil {
		return nil, err
	}

	if !o.Banned && o.Deadline.After(time.Now()) {
		return o, nil
	}
	if service.canSeeUnlisted(actor, o) {
		return o, nil
	}
	return nil, apperr.NotFound("Opportunity")
}

// Update edits an owned opportunity. The slug is fixed at creation so links
// never break.
func (service *Service) Update(ctx context.Context, actor *authz.Actor, id string, input Input) (*Opportunity, error) {
	o, err := service.requireOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := validateInput(input); err != nil {
		return nil, err
	}

	o.Title = input.Title
	o.Description = input.Description
	o.Deadline = input.Deadline

	if err := service.repo.Update(ctx, o); err != nil {
		return nil, err
	}

	service.logger.Info("opportunity_updated", slog.String("opportunity_id", o.ID))
	return o, nil
}

// Delete removes an owned opportunity and its applications.
func (service *Service) Delete(ctx context.Context, actor *authz.Actor, id string) error {
	o, err := service.requireOwned(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, o.ID); err != nil {
		return err
	}

	service.logger.Warn("opportunity_deleted",
		slog.String("opportunity_id", o.ID),
		slog.Int("orphaned_applications", o.Applications),
	)
	return nil
}

// SetBanned flips the administrator-only ban flag.
func (service *Service) SetBanned(ctx context.Context, actor *authz.Actor, id string, banned bool) error {
	if err := authz.RequireRole(actor, authz.RoleAdministrator); err != nil {
		return err
	}

	if err := service.repo.SetBanned(ctx, id, banned); err != nil {
		return err
	}

	service.logger.Info("opportunity_ban_updated",
		slog.String("opportunity_id", id),
		slog.Bool("banned", banned),
		slog.String("administrator_id", actor.ID),
	)
	return nil
}

// ListOpen returns open, unbanned opportunities. No actor required.
func (service *Service) ListOpen(ctx context.Context, filter Filter, limit, offset int) ([]*Opportunity, int, error) {
	return service.repo.ListOpen(ctx, filter, limit, offset)
}

// ListMine returns every opportunity of the actor's provider identity.
func (service *Service) ListMine(ctx context.Context, actor *authz.Actor, limit, offset int) ([]*Opportunity, int, error) {
	providerID, err := authz.RequireProviderIdentity(actor)
	if err != nil {
		return nil, 0, err
	}
	return service.repo.ListOwned(ctx, providerID, limit, offset)
}

// # Applications

// Apply submits the actor's artist identity to an opportunity. One
// application per artist per opportunity; a second attempt is a Conflict.
func (service *Service) Apply(ctx context.Context, actor *authz.Actor, opportunityID string, input ApplicationInput) (*Application, error) {
	if err := authz.RequireRole(actor, authz.RoleArtist); err != nil {
		return nil, err
	}
	artistID, err := authz.RequireArtistIdentity(actor)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldMessage, input.Message).MaxLen(FieldMessage, input.Message, 5000)
	if input.ProjectID != nil {
		validator.UUID(FieldProjectID, *input.ProjectID)
	}
	if validator.HasErrors() {
		return nil, validator.Err()
	}

	o, err := service.repo.Get(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if o.Banned || !o.Deadline.After(time.Now()) {
		return nil, apperr.Unprocessable("This opportunity is no longer accepting applications")
	}

	a := &Application{
		OpportunityID: o.ID,
		ArtistID:      artistID,
		ProjectID:     input.ProjectID,
		Message:       input.Message,
	}
	if err := service.repo.CreateApplication(ctx, a); err != nil {
		return nil, err
	}

	service.logger.Info("application_created",
		slog.String("application_id", a.ID),
		slog.String("opportunity_id", o.ID),
		slog.String("artist_id", artistID),
	)
	return a, nil
}

// ListApplications returns the applications of an owned opportunity.
func (service *Service) ListApplications(ctx context.Context, actor *authz.Actor, opportunityID string, limit, offset int) ([]*Application, int, error) {
	if _, err := service.requireOwned(ctx, actor, opportunityID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListApplications(ctx, opportunityID, limit, offset)
}

// ResolveApplication lets the opportunity's provider accept or reject one
// application.
func (service *Service) ResolveApplication(ctx context.Context, actor *authz.Actor, applicationID string, status ApplicationStatus) error {
	validator := &validate.Validator{}
	validator.OneOf(FieldStatus, string(status), string(ApplicationAccepted), string(ApplicationRejected))
	if err := validator.Err(); err != nil {
		return err
	}

	a, err := service.repo.GetApplication(ctx, applicationID)
	if err != nil {
		return err
	}
	if _, err := service.requireOwned(ctx, actor, a.OpportunityID); err != nil {
		return err
	}

	if err := service.repo.SetApplicationStatus(ctx, a.ID, status); err != nil {
		return err
	}

	service.logger.Info("application_resolved",
		slog.String("application_id", a.ID),
		slog.String("status", string(status)),
	)
	return nil
}

func (service *Service) requireOwned(ctx context.Context, actor *authz.Actor, id string) (*Opportunity, error) {
	if err := authz.RequireRole(actor, authz.RoleProvider); err != nil {
		return nil, err
	}
	providerID, err := authz.RequireProviderIdentity(actor)
	if err != nil {
		return nil, err
	}

	o, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.ProviderID != providerID {
		return nil, apperr.Forbidden("Only the posting provider may modify this opportunity")
	}
	return o, nil
}

func (service *Service) canSeeUnlisted(actor *authz.Actor, o *Opportunity) bool {
	if actor == nil {
		return false
	}
	if actor.ProviderID != nil && *actor.ProviderID == o.ProviderID {
		return true
	}
	return actor.HasRole(authz.RoleAdministrator)
}

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 200)
	if input.Description != nil {
		validator.MaxLen(FieldDescription, *input.Description, 10000)
	}
	validator.Custom(FieldDeadline, input.Deadline.IsZero(), "This field is required")
	validator.Custom(FieldDeadline, !input.Deadline.IsZero() && input.Deadline.Before(time.Now()), "Must be in the future")
	return validator.Err()
}
