// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package guide

import "context"

// Repository is the persistence contract for guides.
type Repository interface {
	Create(ctx context.Context, g *Guide) error
	Get(ctx context.Context, idOrSlug string) (*Guide, error)
	Update(ctx context.Context, g *Guide) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*Guide, int, error)
}
