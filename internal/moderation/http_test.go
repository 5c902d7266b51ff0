// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package moderation_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/DmitryMustk/artdistrict/internal/moderation"
	"github.com/DmitryMustk/artdistrict/internal/notify"
	"github.com/DmitryMustk/artdistrict/internal/platform/authz"
	"github.com/DmitryMustk/artdistrict/internal/platform/ctxutil"
)

func newTestRouter(store moderation.Store) *chi.Mux {
	handler := moderation.NewHandler(newTestService(store, notify.Nop{}))
	router := chi.NewRouter()
	router.Route("/moderation", handler.RegisterRoutes)
	return router
}

func doRequest(router *chi.Mux, method, target string, actor *authz.Actor) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, nil)
	if actor != nil {
		request = request.WithContext(ctxutil.WithActor(request.Context(), actor))
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestRoutes_RoleGates verifies the route-level gates reject before the
handler runs: anonymous requests get 401, wrong roles get 403, and only
the matching role reaches the service.
*/
func TestRoutes_RoleGates(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store)

	// Anonymous
	recorder := doRequest(router, http.MethodGet, "/moderation/queue", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Wrong role
	recorder = doRequest(router, http.MethodGet, "/moderation/queue", artistActor("artist-1"))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	// The gate fired before any store access.
	assert.Zero(t, store.listCalls)

	// Matching role passes through to the service.
	recorder = doRequest(router, http.MethodGet, "/moderation/queue", moderatorActor())
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 2, store.listCalls) // artists + projects sections
}

/*
TestRoutes_AdminOnly verifies the banned listing and the ban flip are
closed to moderators.
*/
func TestRoutes_AdminOnly(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store)

	recorder := doRequest(router, http.MethodGet, "/moderation/banned", moderatorActor())
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = doRequest(router, http.MethodGet, "/moderation/banned", adminActor())
	assert.Equal(t, http.StatusOK, recorder.Code)
}
