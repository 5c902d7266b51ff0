// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

/*
Package opportunity manages provider-posted opportunities and the
applications artists submit to them.

Opportunities are not moderated: providers publish directly. An
administrator ban flag and the deadline are the only visibility gates on
the public listing.
*/
package opportunity

import "time"

// Opportunity is a provider-posted call for artists.
type Opportunity struct {
	ID         string `json:"id"`
	ProviderID string `json:"provider_id"`

	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	Deadline    time.Time `json:"deadline"`

	Banned bool `json:"-"`

	Applications int `json:"applications"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input carries the provider-editable opportunity fields.
type Input struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Deadline    time.Time `json:"deadline"`
}

// ApplicationStatus is the provider-controlled review state of an application.
type ApplicationStatus string

const (
	ApplicationApplied  ApplicationStatus = "applied"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is a member of the closed application-status set.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationApplied, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// Application is one artist's submission to an opportunity, optionally
// backed by one of the artist's projects.
type Application struct {
	ID            string            `json:"id"`
	OpportunityID string            `json:"opportunity_id"`
	ArtistID      string            `json:"artist_id"`
	ProjectID     *string           `json:"project_id"`
	Message       string            `json:"message"`
	Status        ApplicationStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
}

// ApplicationInput carries the artist-supplied application fields.
type ApplicationInput struct {
	ProjectID *string `json:"project_id"`
	Message   string  `json:"message"`
}

// Filter holds the parameters for a paginated public opportunity search.
type Filter struct {
	Query string
}

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDeadline    = "deadline"
	FieldMessage     = "message"
	FieldStatus      = "status"
	FieldProjectID   = "project_id"
)
