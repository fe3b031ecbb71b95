// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

/*
HTTP interface for the song catalogue.

# Routing Strategy

  - Public (v1): faceted search and single-song lookups (GET /songs).
  - Restricted (v1): mutations require the editor role; the genre backfill
    requires the admin role.

The handler translates between the web/JSON layer and the domain
[Service]; all filter decoding happens at this boundary so the service
only ever sees a typed [FilterSpec].
*/
package song

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/theveganplaylist/server/internal/platform/middleware"
	requestutil "github.com/theveganplaylist/server/internal/platform/request"
	"github.com/theveganplaylist/server/internal/platform/respond"
	"github.com/theveganplaylist/server/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for song discovery and management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new song [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the song endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.search)
	router.Get("/{identifier}", handler.get)

	// ## Content Management (Editor Protected)
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Post("/", handler.create)
		editor.Patch("/{id}", handler.update)
		editor.Delete("/{id}", handler.delete)
	})

	// ## Maintenance (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/backfill", handler.backfill)
	})

	return router
}

// # Discovery Endpoints

/*
GET /api/v1/songs.

Description: Runs a faceted catalogue search. Every parameter is optional;
with none supplied the whole catalogue pages through in the default order.

Request:
  - q: string (substring match on title, artist, album, review)
  - vegan_focus, animal_category, advocacy_style, advocacy_issues,
    lyrical_explicitness: []string (facet overlap)
  - genres, parent_genres: []string (hierarchical genre selection)
  - <feature>_min / <feature>_max: float (energy, danceability, valence,
    acousticness, instrumentalness, liveness, speechiness, tempo)
  - year_from, year_to: int
  - sort_by: string (popularity, title, year, artist, energy,
    danceability, valence)
  - page, limit: int

Response:
  - 200: {data, meta, filters}: result page, pagination, filter echo
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	filter := FilterFromQuery(request.URL.Query())

	songs, meta, echo, err := handler.service.Search(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Search(writer, songs, meta, echo)
}

/*
GET /api/v1/songs/{identifier}.

Description: Retrieves one song by UUID or URL slug.

Response:
  - 200: Song
  - 404: ErrNotFound
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "identifier")

	song, err := handler.service.Get(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, song)
}

/*
FilterOptions serves GET /api/v1/filters.

Description: Returns the filter panel payload: distinct facet values, the
genre tree, and the catalogue's release-year span. Served from cache when
available.
*/
func (handler *Handler) FilterOptions(writer http.ResponseWriter, request *http.Request) {
	options, err := handler.service.FilterOptions(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, options)
}

// # Mutation Endpoints

/*
POST /api/v1/songs.

Description: Creates a new song. The slug derives from the title when not
given, and the parent genre is always recomputed from the genre.

Response:
  - 201: Song
  - 400: validation failure
  - 401/403: missing token or insufficient role
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	song := &Song{}
	if err := requestutil.DecodeJSON(request, song); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Create(request.Context(), song); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, song)
}

/*
PATCH /api/v1/songs/{id}.

Description: Partial update. The stored entity is fetched first and the
request body overlays it, so omitted fields keep their values; supplying
"artist_ids" replaces the artist credits.

Response:
  - 200: Song (updated)
  - 404: ErrNotFound
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	song, err := handler.service.repo.FindByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := requestutil.DecodeJSON(request, song); err != nil {
		respond.Error(writer, request, err)
		return
	}
	song.ID = id // the body cannot retarget the row

	if err := handler.service.Update(request.Context(), song); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, song)
}

/*
DELETE /api/v1/songs/{id}.

Description: Soft-deletes a song.

Response:
  - 204: removed
  - 404: ErrNotFound
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// backfillRequest selects the reclassification scope.
type backfillRequest struct {
	OnlyMissing bool `json:"only_missing"`
}

/*
POST /api/v1/songs/backfill.

Description: Reclassifies songs from their artists' live genre tags. The
operation is idempotent; re-running it writes the same values.

Request (Body, optional):
  - only_missing: bool (skip songs that already carry a classification)

Response:
  - 200: {"updated": n}
*/
func (handler *Handler) backfill(writer http.ResponseWriter, request *http.Request) {
	var input backfillRequest
	if request.ContentLength > 0 {
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	updated, err := handler.service.Backfill(request.Context(), input.OnlyMissing)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int{"updated": updated})
}
