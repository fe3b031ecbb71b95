// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package genre

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/theveganplaylist/server/internal/platform/respond"
	"github.com/theveganplaylist/server/pkg/query"
)

// # HTTP Interface

// Handler exposes the taxonomy over HTTP. Everything here is a pure read
// of compiled-in configuration, so there is no service layer in between.
type Handler struct {
	hierarchy *Hierarchy
}

// NewHandler constructs a genre [Handler].
func NewHandler(hierarchy *Hierarchy) *Handler {
	return &Handler{hierarchy: hierarchy}
}

// Routes returns a [chi.Router] with the public taxonomy endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.tree)
	router.Get("/selection", handler.selection)
	router.Get("/classify", handler.classify)

	return router
}

// treeResponse is the full two-level taxonomy.
type treeResponse struct {
	Parents   []string            `json:"parents"`
	Subgenres map[string][]string `json:"subgenres"`
}

/*
GET /api/v1/genres.

Description: Returns the whole genre tree: every parent family and its
member subgenres, sorted for stable rendering.
*/
func (handler *Handler) tree(writer http.ResponseWriter, request *http.Request) {
	parents := handler.hierarchy.Parents()

	tree := treeResponse{
		Parents:   parents,
		Subgenres: make(map[string][]string, len(parents)),
	}
	for _, parent := range parents {
		tree.Subgenres[parent] = handler.hierarchy.Subgenres(parent)
	}

	respond.OK(writer, tree)
}

// selectionResponse is a consistent hierarchical selection state.
type selectionResponse struct {
	Subgenres []string `json:"subgenres"`
	Parents   []string `json:"parents"`
}

/*
GET /api/v1/genres/selection.

Description: Normalizes a subgenre selection for the client's checkbox
tree: unknown names are dropped and any parent whose members are all
selected comes back as selected itself.

Request:
  - genres: []string (repeated or comma-separated)
*/
func (handler *Handler) selection(writer http.ResponseWriter, request *http.Request) {
	selection := NewSelection(handler.hierarchy)
	selection.SetSubgenres(query.Strings(request.URL.Query()["genres"]))

	respond.OK(writer, selectionResponse{
		Subgenres: selection.Subgenres(),
		Parents:   selection.Parents(),
	})
}

/*
GET /api/v1/genres/classify.

Description: Previews how a raw tag list would classify, without touching
any stored data. Used by editors to sanity-check an artist's tags before
running the backfill.

Request:
  - tags: []string (repeated or comma-separated, upstream order preserved)
*/
func (handler *Handler) classify(writer http.ResponseWriter, request *http.Request) {
	tags := query.Strings(request.URL.Query()["tags"])

	respond.OK(writer, handler.hierarchy.Classify(tags))
}
