// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DmitryMustk/artdistrict/internal/platform/constants"
	"github.com/DmitryMustk/artdistrict/internal/platform/middleware"
)

/*
TestRateLimit_RejectionCode drains one client's token bucket and checks the
rejection carries the RATE_LIMITED taxonomy code, not an ad hoc one.
*/
func TestRateLimit_RejectionCode(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	// The bucket refills while the loop runs, so keep firing until a
	// rejection shows up rather than counting on an exact boundary.
	var rejection *httptest.ResponseRecorder
	for i := 0; i < constants.DefaultRateLimitBurst*2; i++ {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "203.0.113.7:40000"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		if recorder.Code == http.StatusTooManyRequests {
			rejection = recorder
			break
		}
	}
	require.NotNil(t, rejection, "bucket never emptied")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rejection.Body.Bytes(), &body))
	assert.Equal(t, "RATE_LIMITED", body[constants.FieldCode])
}
