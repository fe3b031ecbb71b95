// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/theveganplaylist/server/internal/platform/apperr"
	"github.com/theveganplaylist/server/internal/platform/ctxutil"
	"github.com/theveganplaylist/server/internal/platform/sec"
	"github.com/theveganplaylist/server/internal/platform/validate"
)

// DecodeJSON reads the request body and decodes it into the target structure.
// It returns validate.ErrInvalidJSON if decoding fails.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// ID retrieves a named URL parameter (UUID/Slug) from the request.
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Claims extracts the authenticated console claims from the request context.
// Returns nil if the request is not authenticated.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAdmin(request.Context())
}

// RequiredClaims ensures the request is authenticated and returns the claims,
// or apperr.Unauthorized when the request carries no valid session.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAdmin(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}
