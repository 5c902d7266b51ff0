// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

/*
Package guide manages the content-manager maintained help articles.

A guide points at exactly one resource, which is either an external link or
an uploaded file. The variant is stored as one JSONB document and decoded
exactly once at the store boundary; call sites work with the typed
[Resource] and never re-parse the payload.
*/
package guide

import (
	"encoding/json"
	"fmt"
	"time"
)

// Resource is the sealed link-or-file variant attached to a guide.
type Resource interface {
	resourceKind() string
}

// Link points at an external URL.
type Link struct {
	URL string `json:"url"`
}

func (Link) resourceKind() string { return "link" }

// File points at an uploaded document. FileID is an opaque storage token.
type File struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
}

func (File) resourceKind() string { return "file" }

// resourceEnvelope is the wire and storage form of a [Resource].
type resourceEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MarshalResource encodes a resource into its tagged JSON envelope.
func MarshalResource(r Resource) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("guide: nil resource")
	}

	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("guide: failed to encode resource: %w", err)
	}
	return json.Marshal(resourceEnvelope{Type: r.resourceKind(), Data: data})
}

// UnmarshalResource decodes a tagged JSON envelope into the typed variant.
//
// An unknown tag is an error, not a silent fallback: the closed variant set
// is part of the storage contract.
func UnmarshalResource(payload []byte) (Resource, error) {
	var envelope resourceEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("guide: malformed resource envelope: %w", err)
	}

	switch envelope.Type {
	case "link":
		var link Link
		if err := json.Unmarshal(envelope.Data, &link); err != nil {
			return nil, fmt.Errorf("guide: malformed link resource: %w", err)
		}
		return link, nil
	case "file":
		var file File
		if err := json.Unmarshal(envelope.Data, &file); err != nil {
			return nil, fmt.Errorf("guide: malformed file resource: %w", err)
		}
		return file, nil
	}
	return nil, fmt.Errorf("guide: unknown resource type %q", envelope.Type)
}

// ResourceBox carries a [Resource] through JSON request and response bodies
// using the same envelope as the storage layer.
type ResourceBox struct {
	Resource Resource
}

func (box ResourceBox) MarshalJSON() ([]byte, error) {
	return MarshalResource(box.Resource)
}

func (box *ResourceBox) UnmarshalJSON(data []byte) error {
	resource, err := UnmarshalResource(data)
	if err != nil {
		return err
	}
	box.Resource = resource
	return nil
}

// Guide is one help article.
type Guide struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Body  string `json:"body"`

	Resource ResourceBox `json:"resource"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input carries the content-manager editable guide fields.
type Input struct {
	Title string `json:"title"`
	// Slug optionally overrides the one derived from the title. It is fixed
	// at creation; updates ignore it so published links never break.
	Slug     string      `json:"slug"`
	Body     string      `json:"body"`
	Resource ResourceBox `json:"resource"`
}

const (
	FieldTitle    = "title"
	FieldSlug     = "slug"
	FieldBody     = "body"
	FieldResource = "resource"
)
