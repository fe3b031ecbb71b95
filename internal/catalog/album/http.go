// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package album

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/theveganplaylist/server/internal/platform/middleware"
	requestutil "github.com/theveganplaylist/server/internal/platform/request"
	"github.com/theveganplaylist/server/internal/platform/respond"
	"github.com/theveganplaylist/server/internal/platform/sec"
	"github.com/theveganplaylist/server/pkg/pagination"
)

// Handler implements the HTTP layer for album discovery and management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new album [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the album endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{identifier}", handler.get)

	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Post("/", handler.create)
		editor.Patch("/{id}", handler.update)
		editor.Delete("/{id}", handler.delete)
	})

	return router
}

/*
GET /api/v1/albums.

Request:
  - q: string (substring match on title)
  - page, limit: int
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	window := pagination.FromRequest(request)
	filter := Filter{
		Query: strings.TrimSpace(request.URL.Query().Get("q")),
		Page:  window.Page,
		Limit: window.Limit,
	}

	albums, meta, err := handler.service.List(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, albums, meta)
}

/*
GET /api/v1/albums/{identifier}. UUID or slug.
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "identifier")

	album, err := handler.service.Get(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, album)
}

/*
POST /api/v1/albums. Editor protected.
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	album := &Album{}
	if err := requestutil.DecodeJSON(request, album); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Create(request.Context(), album); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, album)
}

/*
PATCH /api/v1/albums/{id}. Partial update over the stored entity.
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	album, err := handler.service.repo.FindByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := requestutil.DecodeJSON(request, album); err != nil {
		respond.Error(writer, request, err)
		return
	}
	album.ID = id

	if err := handler.service.Update(request.Context(), album); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, album)
}

/*
DELETE /api/v1/albums/{id}. Soft delete.
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
