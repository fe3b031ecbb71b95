// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

/*
Package artist manages the performer side of the catalogue.

An artist carries the raw upstream genre tag list exactly as Spotify
supplied it. Those tags are the input to song classification and the
match target for genre search filters; they are never normalized in
place, because upstream tag order is a relevance signal.
*/
package artist

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/theveganplaylist/server/pkg/query"
)

// # Core Entities

// Artist is a performer in the catalogue.
type Artist struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	SpotifyID *string `json:"spotify_id,omitempty"`

	// Genres is the raw upstream tag list, unprocessed and in upstream
	// order.
	Genres []string `json:"genres"`

	Popularity int     `json:"popularity"` // 0-100, from Spotify
	Followers  int64   `json:"followers"`
	ImageURL   *string `json:"image_url,omitempty"`
	Bio        *string `json:"bio,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// # Search & Filtering

// Filter holds the parameters for a filtered artist list query. The zero
// value matches every artist.
type Filter struct {
	Query        string   `json:"q,omitempty"`             // substring match on name
	Genres       []string `json:"genres,omitempty"`        // overlap with the raw tag list
	ParentGenres []string `json:"parent_genres,omitempty"` // expanded before matching
	Page         int      `json:"page,omitempty"`
	Limit        int      `json:"limit,omitempty"`
}

// FilterFromQuery decodes the artist search parameters. Genre names are
// lowercased, sorted, and deduplicated; decoding never fails.
func FilterFromQuery(values url.Values) Filter {
	f := Filter{
		Query:        strings.TrimSpace(values.Get("q")),
		Genres:       normalizeGenres(values["genres"]),
		ParentGenres: normalizeGenres(values["parent_genres"]),
	}

	if p := query.IntPtr(values.Get("page")); p != nil {
		f.Page = *p
	}
	if l := query.IntPtr(values.Get("limit")); l != nil {
		f.Limit = *l
	}

	return f
}

func normalizeGenres(raw []string) []string {
	vals := query.Strings(raw)
	if len(vals) == 0 {
		return nil
	}

	for i, v := range vals {
		vals[i] = strings.ToLower(v)
	}
	sort.Strings(vals)

	out := vals[:1]
	for _, v := range vals[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
