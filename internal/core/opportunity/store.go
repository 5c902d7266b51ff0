// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package opportunity

import "context"

// Repository is the persistence contract for opportunities and applications.
type Repository interface {
	Create(ctx context.Context, o *Opportunity) error
	Get(ctx context.Context, id string) (*Opportunity, error)
	GetBySlug(ctx context.Context, slug string) (*Opportunity, error)
	Update(ctx context.Context, o *Opportunity) error
	Delete(ctx context.Context, id string) error
	SetBanned(ctx context.Context, id string, banned bool) error

	// ListOpen applies the public predicate: not banned, deadline in the
	// future. ListOwned returns every opportunity of one provider.
	ListOpen(ctx context.Context, f Filter, limit, offset int) ([]*Opportunity, int, error)
	ListOwned(ctx context.Context, providerID string, limit, offset int) ([]*Opportunity, int, error)

	CreateApplication(ctx context.Context, a *Application) error
	ListApplications(ctx context.Context, opportunityID string, limit, offset int) ([]*Application, int, error)
	GetApplication(ctx context.Context, id string) (*Application, error)
	SetApplicationStatus(ctx context.Context, id string, status ApplicationStatus) error
}
