// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package project

import "context"

// Repository is the persistence contract for projects.
type Repository interface {
	Create(ctx context.Context, p *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id string) error
	SetHidden(ctx context.Context, id string, hidden bool) error

	// ListPublic applies the public predicate: approved, not banned, not
	// hidden. ListOwned returns every project of one artist.
	ListPublic(ctx context.Context, f Filter, limit, offset int) ([]*Project, int, error)
	ListOwned(ctx context.Context, artistID string, limit, offset int) ([]*Project, int, error)
}
