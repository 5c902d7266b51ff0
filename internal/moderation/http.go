// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package moderation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DmitryMustk/artdistrict/internal/platform/authz"
	"github.com/DmitryMustk/artdistrict/internal/platform/constants"
	"github.com/DmitryMustk/artdistrict/internal/platform/middleware"
	requestutil "github.com/DmitryMustk/artdistrict/internal/platform/request"
	"github.com/DmitryMustk/artdistrict/internal/platform/respond"
	"github.com/DmitryMustk/artdistrict/pkg/convert"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the moderation surface. Route-level gates mirror the
// service guards; the service remains authoritative.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.With(middleware.RequireRole(authz.RoleModerator)).Get("/queue", handler.listQueue)
	router.With(middleware.RequireRole(authz.RoleAdministrator)).Get("/banned", handler.listBanned)

	router.With(middleware.RequireRole(authz.RoleArtist)).Post("/{kind}/{id}/submit", handler.submit)
	router.With(middleware.RequireRole(authz.RoleModerator)).Post("/{kind}/{id}/resolve", handler.resolve)
	router.With(middleware.RequireRole(authz.RoleAdministrator)).Put("/{kind}/{id}/banned", handler.setBanned)
}

func (handler *Handler) listQueue(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.Queue(request.Context(), actor, queryFromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

func (handler *Handler) listBanned(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.Banned(request.Context(), actor, queryFromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	kind := EntityKind(requestutil.Param(request, "kind"))
	id := requestutil.ID(request, "id")

	if err := handler.service.Submit(request.Context(), actor, kind, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) resolve(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Decision string `json:"decision"`
		Comment  string `json:"comment"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	kind := EntityKind(requestutil.Param(request, "kind"))
	id := requestutil.ID(request, "id")

	if err := handler.service.Resolve(request.Context(), actor, kind, id, Status(input.Decision), input.Comment); err != nil {
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

	kind := EntityKind(requestutil.Param(request, "kind"))
	id := requestutil.ID(request, "id")

	if err := handler.service.SetBanned(request.Context(), actor, kind, id, input.Banned); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// queryFromRequest parses the listing query string. Page defaults to 1, the
// window size to the moderation queue default, the order to newest first.
func queryFromRequest(request *http.Request) Query {
	values := request.URL.Query()

	query := Query{
		Kind:    EntityKind(values.Get("kind")),
		Order:   OrderDesc,
		Page:    1,
		PerPage: constants.ModerationQueuePerPage,
	}

	if values.Get("order") == string(OrderAsc) {
		query.Order = OrderAsc
	}
	if page := convert.ToIntD(values.Get("page"), 0); page > 0 {
		query.Page = page
	}
	if perPage := convert.ToIntD(values.Get("per_page"), 0); perPage > 0 {
		query.PerPage = perPage
	}

	return query
}
