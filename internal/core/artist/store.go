// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package artist

import "context"

// Repository is the persistence contract for artist profiles.
//
// ListPublic applies the public visibility predicate (approved and not
// banned) in the store so callers cannot forget it; Get returns any profile
// and leaves visibility to the service.
type Repository interface {
	ListPublic(ctx context.Context, f Filter, limit, offset int) ([]*Artist, int, error)
	Get(ctx context.Context, id string) (*Artist, error)
	GetByUserID(ctx context.Context, userID string) (*Artist, error)
	Update(ctx context.Context, a *Artist) error
}
