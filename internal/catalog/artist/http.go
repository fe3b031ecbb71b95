// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package artist

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/theveganplaylist/server/internal/catalog/song"
	"github.com/theveganplaylist/server/internal/platform/middleware"
	requestutil "github.com/theveganplaylist/server/internal/platform/request"
	"github.com/theveganplaylist/server/internal/platform/respond"
	"github.com/theveganplaylist/server/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for artist discovery and management.
type Handler struct {
	service *Service
	songs   *song.Service
}

// NewHandler constructs a new artist [Handler].
func NewHandler(service *Service, songs *song.Service) *Handler {
	return &Handler{service: service, songs: songs}
}

// Routes returns a [chi.Router] configured with the artist endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{identifier}", handler.get)
	router.Get("/{identifier}/songs", handler.listSongs)

	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Post("/", handler.create)
		editor.Patch("/{id}", handler.update)
		editor.Delete("/{id}", handler.delete)
	})

	return router
}

/*
GET /api/v1/artists.

Request:
  - q: string (substring match on name)
  - genres, parent_genres: []string (overlap with raw tags)
  - page, limit: int

Response:
  - 200: {data, meta}
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	filter := FilterFromQuery(request.URL.Query())

	artists, meta, err := handler.service.List(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, artists, meta)
}

/*
GET /api/v1/artists/{identifier}. UUID or slug.
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "identifier")

	artist, err := handler.service.Get(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, artist)
}

/*
GET /api/v1/artists/{identifier}/songs. The artist's discography, scoped
through the song search so the usual facet, sort, and pagination
parameters all apply.
*/
func (handler *Handler) listSongs(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "identifier")

	artist, err := handler.service.Get(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := song.FilterFromQuery(request.URL.Query())
	filter.ArtistID = artist.ID

	songs, meta, _, err := handler.songs.Search(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, songs, meta)
}

/*
POST /api/v1/artists. Editor protected.
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	artist := &Artist{}
	if err := requestutil.DecodeJSON(request, artist); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Create(request.Context(), artist); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, artist)
}

/*
PATCH /api/v1/artists/{id}. Partial update over the stored entity.
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	artist, err := handler.service.repo.FindByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := requestutil.DecodeJSON(request, artist); err != nil {
		respond.Error(writer, request, err)
		return
	}
	artist.ID = id

	if err := handler.service.Update(request.Context(), artist); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, artist)
}

/*
DELETE /api/v1/artists/{id}. Soft delete.
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
