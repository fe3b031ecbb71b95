// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/theveganplaylist/server/internal/platform/request"
	"github.com/theveganplaylist/server/internal/platform/respond"
	"github.com/theveganplaylist/server/internal/platform/validate"
)

// # HTTP Interface

// Handler exposes the console authentication endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs the admin [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the authentication endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)

	return router
}

// loginRequest is the inbound credentials payload.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
POST /api/v1/admin/login.

Description: Exchanges console credentials for a short-lived bearer token.

Response:
  - 200: Session {token, expires_in, role}
  - 401: invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("username", input.Username).Required("password", input.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}
