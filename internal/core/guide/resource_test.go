// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package guide_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DmitryMustk/artdistrict/internal/core/guide"
)

/*
TestResource_RoundTrip encodes both variants through the tagged envelope and
decodes them back into the same typed value.
*/
func TestResource_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		resource guide.Resource
	}{
		{"link", guide.Link{URL: "https://artdistrict.app/handbook"}},
		{"file", guide.File{FileID: "f-123", FileName: "grants.pdf", FileType: "application/pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := guide.MarshalResource(tt.resource)
			require.NoError(t, err)

			decoded, err := guide.UnmarshalResource(payload)
			require.NoError(t, err)
			assert.Equal(t, tt.resource, decoded)
		})
	}
}

/*
TestResource_UnknownTag verifies that an unknown variant tag fails loudly
instead of degrading into a zero value.
*/
func TestResource_UnknownTag(t *testing.T) {
	_, err := guide.UnmarshalResource([]byte(`{"type":"video","data":{}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown resource type")
}

/*
TestResourceBox_JSON verifies the request/response body form matches the
storage envelope.
*/
func TestResourceBox_JSON(t *testing.T) {
	var input guide.Input
	body := []byte(`{
		"title": "Applying for residencies",
		"body": "Start early.",
		"resource": {"type": "link", "data": {"url": "https://example.com/residencies"}}
	}`)
	require.NoError(t, json.Unmarshal(body, &input))

	link, ok := input.Resource.Resource.(guide.Link)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/residencies", link.URL)

	out, err := json.Marshal(input.Resource)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"link","data":{"url":"https://example.com/residencies"}}`, string(out))
}

/*
TestResource_NilRejected verifies a guide cannot carry an absent resource.
*/
func TestResource_NilRejected(t *testing.T) {
	_, err := guide.MarshalResource(nil)
	assert.Error(t, err)
}
