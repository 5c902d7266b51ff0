// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package opportunity

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
	router.Get("/", handler.listOpportunities)

	// Provider
	router.Group(func(provider chi.Router) {
		provider.Use(middleware.RequireRole(authz.RoleProvider))

		provider.Get("/mine", handler.listMine)
		provider.Post("/", handler.createOpportunity)
		provider.Patch("/{id}", handler.updateOpportunity)
		provider.Delete("/{id}", handler.deleteOpportunity)
		provider.Get("/{id}/applications", handler.listApplications)
		provider.Put("/applications/{applicationID}/status", handler.resolveApplication)
	})

	// Admin strict only
	router.With(middleware.RequireRole(authz.RoleAdministrator)).Put("/{id}/banned", handler.setBanned)

	// Artist applications
	router.With(middleware.RequireRole(authz.RoleArtist)).Post("/{id}/applications", handler.apply)

	router.Get("/{idOrSlug}", handler.getOpportunity)
}

func (handler *Handler) listOpportunities(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{Query: request.URL.Query().Get("q")}

	opportunities, total, err := handler.service.ListOpen(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if opportunities == nil {
		opportunities = []*Opportunity{}
	}

	respond.Paginated(writer, opportunities, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	opportunities, total, err := handler.service.ListMine(request.Context(), actor, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if opportunities == nil {
		opportunities = []*Opportunity{}
	}

	respond.Paginated(writer, opportunities, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getOpportunity(writer http.ResponseWriter, request *http.Request) {
	opportunity, err := handler.service.Get(request.Context(), requestutil.Actor(request), requestutil.Param(request, "idOrSlug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, opportunity)
}

func (handler *Handler) createOpportunity(writer http.ResponseWriter, request *http.Request) {
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

	opportunity, err := handler.service.Create(request.Context(), actor, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, opportunity)
}

func (handler *Handler) updateOpportunity(writer http.ResponseWriter, request *http.Request) {
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

	opportunity, err := handler.service.Update(request.Context(), actor, requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, opportunity)
}

func (handler *Handler) deleteOpportunity(writer http.ResponseWriter, request *http.Request) {
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

func (handler *Handler) setBanned(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Banned bool `json:"banned"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SetBanned(request.Context(), actor, requestutil.ID(request, "id"), input.Banned); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) apply(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ApplicationInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	application, err := handler.service.Apply(request.Context(), actor, requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, application)
}

func (handler *Handler) listApplications(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	applications, total, err := handler.service.ListApplications(request.Context(), actor, requestutil.ID(request, "id"), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if applications == nil {
		applications = []*Application{}
	}

	respond.Paginated(writer, applications, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) resolveApplication(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ResolveApplication(request.Context(), actor, requestutil.ID(request, "applicationID"), ApplicationStatus(input.Status)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
