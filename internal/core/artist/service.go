// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package artist

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

// ListPublic returns approved, unbanned profiles. No actor required.
func (service *Service) ListPublic(ctx context.Context, filter Filter, limit, offset int) ([]*Artist, int, error) {
	return service.repo.ListPublic(ctx, filter, limit, offset)
}

// Get returns a single profile. Profiles outside the public predicate are
// visible only to their owner, moderators, and administrators.
func (service *Service) Get(ctx context.Context, actor *authz.Actor, id string) (*Artist, error) {
	a, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if a.Status == moderation.StatusApproved && !a.Banned {
		return a, nil
	}
	if service.canSeeUnlisted(actor, a) {
		return a, nil
	}
	// Hidden profiles are indistinguishable from absent ones.
	return nil, apperr.NotFound("Artist")
}

// GetMine returns the actor's own profile, regardless of status.
func (service *Service) GetMine(ctx context.Context, actor *authz.Actor) (*Artist, error) {
	artistID, err := authz.RequireArtistIdentity(actor)
	if err != nil {
		return nil, err
	}
	return service.repo.Get(ctx, artistID)
}

// UpdateMine applies a content edit to the actor's own profile.
//
// The edit never touches moderation state: a denied profile stays denied
// until the owner explicitly resubmits it.
func (service *Service) UpdateMine(ctx context.Context, actor *authz.Actor, input Input) (*Artist, error) {
	if err := authz.RequireRole(actor, authz.RoleArtist); err != nil {
		return nil, err
	}
	artistID, err := authz.RequireArtistIdentity(actor)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 200)
	if input.Bio != nil {
		validator.MaxLen(FieldBio, *input.Bio, 5000)
	}
	validator.Custom(FieldIndustries, len(input.Industries) > 20, "Maximum 20 industries")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	a, err := service.repo.Get(ctx, artistID)
	if err != nil {
		return nil, err
	}

	a.Name = input.Name
	a.Bio = input.Bio
	a.Country = input.Country
	a.Industries = input.Industries

	if err := service.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	service.logger.Info("artist_profile_updated", slog.String("artist_id", a.ID))
	return a, nil
}

func (service *Service) canSeeUnlisted(actor *authz.Actor, a *Artist) bool {
	if actor == nil {
		return false
	}
	if actor.ArtistID != nil && *actor.ArtistID == a.ID {
		return true
	}
	return actor.HasRole(authz.RoleModerator) || actor.HasRole(authz.RoleAdministrator)
}
