// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package artist

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DmitryMustk/artdistrict/internal/platform/authz"
	"github.com/DmitryMustk/artdistrict/internal/platform/middleware"
	requestutil "github.com/DmitryMustk/artdistrict/internal/platform/request"
	"github.com/DmitryMustk/artdistrict/internal/platform/respond"
	"github.com/DmitryMustk/artdistrict/pkg/pagination"
	"github.com/DmitryMustk/artdistrict/pkg/query"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listArtists)

	// Owner
	router.Group(func(owned chi.Router) {
		owned.Use(middleware.RequireRole(authz.RoleArtist))

		owned.Get("/me", handler.getMine)
		owned.Patch("/me", handler.updateMine)
	})

	router.Get("/{id}", handler.getArtist)
}

func (handler *Handler) listArtists(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query:      request.URL.Query().Get("q"),
		Country:    request.URL.Query().Get("country"),
		Industries: query.StringSlice(request.URL.Query().Get("industries")),
	}

	artists, total, err := handler.service.ListPublic(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if artists == nil {
		artists = []*Artist{}
	}

	respond.Paginated(writer, artists, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getArtist(writer http.ResponseWriter, request *http.Request) {
	artist, err := handler.service.Get(request.Context(), requestutil.Actor(request), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, artist)
}

func (handler *Handler) getMine(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	artist, err := handler.service.GetMine(request.Context(), actor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, artist)
}

func (handler *Handler) updateMine(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	artist, err := handler.service.UpdateMine(request.Context(), actor, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, artist)
}
