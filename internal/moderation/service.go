// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package moderation

import (
	"context"
	"log/slog"
	"time"

	"github.com/DmitryMustk/artdistrict/internal/notify"
	"github.com/DmitryMustk/artdistrict/internal/platform/authz"
	"github.com/DmitryMustk/artdistrict/internal/platform/validate"
	"github.com/DmitryMustk/artdistrict/pkg/pagination"
)

// Service orchestrates the moderation lifecycle: it applies the authorization
// guard, delegates atomic state changes to the store, and emits decision
// notifications.
//
// Every operation takes the acting principal explicitly. The service holds no
// per-request state and is safe for concurrent use.
type Service struct {
	store      Store
	dispatcher notify.Dispatcher
	logger     *slog.Logger
}

// NewService constructs a moderation service.
func NewService(store Store, dispatcher notify.Dispatcher, logger *slog.Logger) *Service {
	return &Service{
		store:      store,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// # Lifecycle Operations

// Submit moves an entity owned by the actor's artist identity onto the
// review queue. Legal only from draft, denied, or approved.
func (service *Service) Submit(ctx context.Context, actor *authz.Actor, kind EntityKind, id string) error {
	if err := authz.RequireRole(actor, authz.RoleArtist); err != nil {
		return err
	}
	if !kind.Valid() {
		return validate.RequiredError("kind", "Unknown entity kind")
	}

	ownerArtistID, err := authz.RequireArtistIdentity(actor)
	if err != nil {
		return err
	}

	if err := service.store.Submit(ctx, kind, id, ownerArtistID); err != nil {
		return err
	}

	service.logger.Info("moderation_submitted",
		slog.String("kind", string(kind)),
		slog.String("entity_id", id),
		slog.String("owner_artist_id", ownerArtistID),
	)
	return nil
}

// Resolve records a moderator's decision on an entity under review.
//
// The decision notification is fire-and-forget: once the store transaction
// committed, a dispatch failure is logged and swallowed — it never invalidates
// the decision.
func (service *Service) Resolve(ctx context.Context, actor *authz.Actor, kind EntityKind, id string, decision Status, comment string) error {
	if err := authz.RequireRole(actor, authz.RoleModerator); err != nil {
		return err
	}

	validator := &validate.Validator{}
	validator.Custom("kind", !kind.Valid(), "Unknown entity kind")
	validator.OneOf("decision", string(decision), string(StatusApproved), string(StatusDenied))
	validator.MaxLen("comment", comment, 2000)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.store.Resolve(ctx, kind, id, decision, comment, actor.ID); err != nil {
		return err
	}

	service.logger.Info("moderation_resolved",
		slog.String("kind", string(kind)),
		slog.String("entity_id", id),
		slog.String("decision", string(decision)),
		slog.String("moderator_id", actor.ID),
	)

	event := notify.Event{
		EntityKind:  string(kind),
		EntityID:    id,
		Decision:    string(decision),
		Comment:     comment,
		ModeratorID: actor.ID,
		OccurredAt:  time.Now(),
	}
	if err := service.dispatcher.Dispatch(ctx, event); err != nil {
		service.logger.Warn("moderation_notify_failed",
			slog.String("entity_id", id),
			slog.Any("error", err),
		)
	}

	return nil
}

// SetBanned flips the administrator-only visibility override.
//
// Banning is orthogonal to the lifecycle: it is legal from any status and
// never changes moderationstatus.
func (service *Service) SetBanned(ctx context.Context, actor *authz.Actor, kind EntityKind, id string, banned bool) error {
	if err := authz.RequireRole(actor, authz.RoleAdministrator); err != nil {
		return err
	}

	if !kind.Valid() {
		return validate.RequiredError("kind", "Unknown entity kind")
	}

	if err := service.store.SetBanned(ctx, kind, id, banned); err != nil {
		return err
	}

	service.logger.Info("moderation_ban_updated",
		slog.String("kind", string(kind)),
		slog.String("entity_id", id),
		slog.Bool("banned", banned),
		slog.String("administrator_id", actor.ID),
	)
	return nil
}

// # Queue Listings

// QueueSection is one independently windowed sub-list of the queue view.
type QueueSection struct {
	Items []*QueueItem    `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}

// QueuePage is the combined queue view. An empty query kind populates both
// sections; a specific kind populates only its own. The two sections are two
// independent windowed queries — their counts are never unified.
type QueuePage struct {
	Artists  *QueueSection `json:"artists,omitempty"`
	Projects *QueueSection `json:"projects,omitempty"`
}

// Queue returns a page of entities awaiting review. Moderator only.
func (service *Service) Queue(ctx context.Context, actor *authz.Actor, query Query) (*QueuePage, error) {
	if err := authz.RequireRole(actor, authz.RoleModerator); err != nil {
		return nil, err
	}
	return service.listPage(ctx, query, service.store.ListQueue)
}

// Banned returns a page of banned entities. Administrator only.
func (service *Service) Banned(ctx context.Context, actor *authz.Actor, query Query) (*QueuePage, error) {
	if err := authz.RequireRole(actor, authz.RoleAdministrator); err != nil {
		return nil, err
	}
	return service.listPage(ctx, query, service.store.ListBanned)
}

// listFunc is the shape shared by ListQueue and ListBanned.
type listFunc func(ctx context.Context, kind EntityKind, order SortOrder, limit, offset int) ([]*QueueItem, int, error)

// listPage validates the query, clamps the page, and windows each requested
// kind independently.
func (service *Service) listPage(ctx context.Context, query Query, list listFunc) (*QueuePage, error) {
	// A non-positive window size is a caller bug, not a clampable input.
	validator := &validate.Validator{}
	validator.Positive("per_page", query.PerPage)
	validator.Custom("kind", query.Kind != "" && !query.Kind.Valid(), "Unknown entity kind")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if query.Page < 1 {
		query.Page = 1
	}
	if query.Order != OrderAsc {
		query.Order = OrderDesc
	}

	kinds := []EntityKind{KindArtist, KindProject}
	if query.Kind != "" {
		kinds = []EntityKind{query.Kind}
	}

	offset := (query.Page - 1) * query.PerPage

	page := &QueuePage{}
	for _, kind := range kinds {
		items, total, err := list(ctx, kind, query.Order, query.PerPage, offset)
		if err != nil {
			return nil, err
		}

		section := &QueueSection{
			Items: items,
			Meta:  pagination.NewMeta(query.Page, query.PerPage, total),
		}
		if section.Items == nil {
			section.Items = []*QueueItem{}
		}

		switch kind {
		case KindArtist:
			page.Artists = section
		case KindProject:
			page.Projects = section
		}
	}

	return page, nil
}
