// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package spotify

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/theveganplaylist/server/internal/platform/request"
	"github.com/theveganplaylist/server/internal/platform/respond"
	"github.com/theveganplaylist/server/internal/platform/validate"
)

// # HTTP Interface

// Handler exposes the import endpoints. The server mounts it behind the
// admin role gate.
type Handler struct {
	importer *Importer
}

// NewHandler constructs the import [Handler].
func NewHandler(importer *Importer) *Handler {
	return &Handler{importer: importer}
}

// Routes returns a [chi.Router] with the import endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/artist", handler.importArtist)

	return router
}

// importRequest is the inbound import payload.
type importRequest struct {
	SpotifyID string `json:"spotify_id"`
}

/*
POST /api/v1/admin/import/artist.

Description: Imports an artist and their full discography from Spotify.
Safe to repeat; already-imported rows are skipped.

Response:
  - 200: Report
  - 404: unknown Spotify artist ID
  - 502: upstream failure
*/
func (handler *Handler) importArtist(writer http.ResponseWriter, request *http.Request) {
	var input importRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("spotify_id", input.SpotifyID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.importer.ImportArtist(request.Context(), input.SpotifyID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}
