// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package auth

// # Token Sizing

const (
	// RefreshTokenLength is the entropy, in bytes, of an opaque refresh token.
	RefreshTokenLength = 32
)
