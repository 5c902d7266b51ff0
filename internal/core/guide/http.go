// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package guide

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DmitryMustk/artdistrict/internal/platform/authz"
	"github.com/DmitryMustk/artdistrict/internal/platform/middleware"
	requestutil "github.com/DmitryMustk/artdistrict/internal/platform/request"
	"github.com/DmitryMustk/artdistrict/internal/platform/respond"
	"github.com/DmitryMustk/artdistrict/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listGuides)
	router.Get("/{idOrSlug}", handler.getGuide)

	// Content manager only
	router.Group(func(managed chi.Router) {
		managed.Use(middleware.RequireRole(authz.RoleContentManager))

		managed.Post("/", handler.createGuide)
		managed.Patch("/{id}", handler.updateGuide)
		managed.Delete("/{id}", handler.deleteGuide)
	})
}

func (handler *Handler) listGuides(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	guides, total, err := handler.service.List(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if guides == nil {
		guides = []*Guide{}
	}

	respond.Paginated(writer, guides, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getGuide(writer http.ResponseWriter, request *http.Request) {
	guide, err := handler.service.Get(request.Context(), requestutil.Param(request, "idOrSlug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, guide)
}

func (handler *Handler) createGuide(writer http.ResponseWriter, request *http.Request) {
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

	guide, err := handler.service.Create(request.Context(), actor, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, guide)
}

func (handler *Handler) updateGuide(writer http.ResponseWriter, request *http.Request) {
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

	guide, err := handler.service.Update(request.Context(), actor, requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, guide)
}

func (handler *Handler) deleteGuide(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), actor, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
