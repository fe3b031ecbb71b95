// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

/*
Package song defines the central domain entity of The Vegan Playlist
catalogue and the faceted search machinery around it.

A song combines three kinds of attributes:

  - Classification: a cached (genre, parent genre) pair resolved from the
    raw artist tags at import time, plus the advocacy facets (vegan focus,
    animal category, advocacy style, advocacy issues, lyrical
    explicitness) curated by the editors.
  - Audio profile: the numeric audio features imported from Spotify
    (energy, danceability, valence, ...), each nullable because older
    imports predate feature coverage.
  - Associations: many artists through a join relation, and at most one
    album, from which the song inherits its release year.

The search side of the package turns a [FilterSpec] into a deterministic,
parameterized query plan; see plan.go.
*/
package song

import "time"

// # Core Entities

// Song is a single catalogued track.
type Song struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Slug      string  `json:"slug"` // URL-safe identifier
	SpotifyID *string `json:"spotify_id,omitempty"`
	AlbumID   *string `json:"album_id,omitempty"`

	// # Classification
	// Genre and ParentGenre are computed once by the taxonomy resolver and
	// cached here; they are only rewritten by the backfill or an explicit
	// admin edit, never on read.
	Genre       *string `json:"genre"`
	ParentGenre *string `json:"parent_genre"`

	// # Advocacy Facets
	// Free-form tag sets; no fixed vocabulary is enforced at this layer.
	VeganFocus          []string `json:"vegan_focus"`
	AnimalCategory      []string `json:"animal_category"`
	AdvocacyStyle       []string `json:"advocacy_style"`
	AdvocacyIssues      []string `json:"advocacy_issues"`
	LyricalExplicitness []string `json:"lyrical_explicitness"`

	// # Audio Features
	// All conceptually in [0,1] except tempo (BPM), loudness (dB, usually
	// negative), key (0-11), mode (0/1) and time signature.
	Energy           *float64 `json:"energy"`
	Danceability     *float64 `json:"danceability"`
	Valence          *float64 `json:"valence"`
	Acousticness     *float64 `json:"acousticness"`
	Instrumentalness *float64 `json:"instrumentalness"`
	Liveness         *float64 `json:"liveness"`
	Speechiness      *float64 `json:"speechiness"`
	Tempo            *float64 `json:"tempo"`
	Loudness         *float64 `json:"loudness"`
	Key              *int     `json:"key"`
	Mode             *int     `json:"mode"`
	TimeSignature    *int     `json:"time_signature"`

	Popularity int     `json:"popularity"` // 0-100, from Spotify
	Review     *string `json:"review,omitempty"`
	YouTubeID  *string `json:"youtube_id,omitempty"`
	Featured   bool    `json:"featured"`

	Artists []ArtistRef `json:"artists"`
	Album   *AlbumRef   `json:"album,omitempty"`

	// # Junction IDs (Input only)
	ArtistIDs []string `json:"artist_ids,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"` // nil = active; non-nil = soft-deleted
}

// ArtistRef is the denormalized artist summary embedded in song responses.
type ArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// AlbumRef is the denormalized album summary embedded in song responses.
type AlbumRef struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
}

// # Facet Identifiers

// Facet names as they appear in query parameters and in the filter echo.
const (
	FacetVeganFocus          = "vegan_focus"
	FacetAnimalCategory      = "animal_category"
	FacetAdvocacyStyle       = "advocacy_style"
	FacetAdvocacyIssues      = "advocacy_issues"
	FacetLyricalExplicitness = "lyrical_explicitness"
)

// Facets lists every facet in the fixed order used for predicate
// construction and for the filter-options payload. The order matters for
// plan determinism; never reorder it casually.
var Facets = []string{
	FacetVeganFocus,
	FacetAnimalCategory,
	FacetAdvocacyStyle,
	FacetAdvocacyIssues,
	FacetLyricalExplicitness,
}

// # Search & Filtering

// Range is an optional numeric interval; either bound may be absent.
type Range struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// IsZero reports whether neither bound is set.
func (r Range) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

// YearRange is an optional release-year interval.
type YearRange struct {
	From *int `json:"from,omitempty"`
	To   *int `json:"to,omitempty"`
}

// IsZero reports whether neither bound is set.
func (y YearRange) IsZero() bool {
	return y.From == nil && y.To == nil
}

// FilterSpec is the normalized, typed form of one search request. The zero
// value matches every song. Building a plan from the same FilterSpec twice
// yields an identical plan, which is what makes result caching safe.
type FilterSpec struct {
	Query string `json:"q,omitempty"` // free-text substring search

	// ArtistID scopes the search to one artist's songs. It is set
	// programmatically by the artist discography endpoint, never decoded
	// from query parameters, and does not appear in the filter echo.
	ArtistID string `json:"-"`

	// Facet selections; array-overlap semantics against the stored sets.
	VeganFocus          []string `json:"vegan_focus,omitempty"`
	AnimalCategory      []string `json:"animal_category,omitempty"`
	AdvocacyStyle       []string `json:"advocacy_style,omitempty"`
	AdvocacyIssues      []string `json:"advocacy_issues,omitempty"`
	LyricalExplicitness []string `json:"lyrical_explicitness,omitempty"`

	// Hierarchical genre selections. Genres are concrete subgenres matched
	// against the live artist tag lists; ParentGenres are expanded into
	// their member subgenres before matching.
	Genres       []string `json:"genres,omitempty"`
	ParentGenres []string `json:"parent_genres,omitempty"`

	Energy           Range `json:"energy,omitzero"`
	Danceability     Range `json:"danceability,omitzero"`
	Valence          Range `json:"valence,omitzero"`
	Acousticness     Range `json:"acousticness,omitzero"`
	Instrumentalness Range `json:"instrumentalness,omitzero"`
	Liveness         Range `json:"liveness,omitzero"`
	Speechiness      Range `json:"speechiness,omitzero"`
	Tempo            Range `json:"tempo,omitzero"`
	Loudness         Range `json:"loudness,omitzero"`

	Year YearRange `json:"year,omitzero"`

	Sort  Sort `json:"sort_by,omitempty"`
	Page  int  `json:"page,omitempty"`
	Limit int  `json:"limit,omitempty"`
}

// Facet returns the selected values for a named facet, or nil for an
// unknown facet name.
func (f FilterSpec) Facet(name string) []string {
	switch name {
	case FacetVeganFocus:
		return f.VeganFocus
	case FacetAnimalCategory:
		return f.AnimalCategory
	case FacetAdvocacyStyle:
		return f.AdvocacyStyle
	case FacetAdvocacyIssues:
		return f.AdvocacyIssues
	case FacetLyricalExplicitness:
		return f.LyricalExplicitness
	}
	return nil
}

// # Sorting

// Sort identifies one of the fixed result orderings.
type Sort string

const (
	SortPopularity   Sort = "popularity"
	SortTitle        Sort = "title"
	SortYear         Sort = "year"
	SortArtist       Sort = "artist"
	SortEnergy       Sort = "energy"
	SortDanceability Sort = "danceability"
	SortValence      Sort = "valence"
)

// ParseSort maps a raw sort key onto the enum. Unrecognized keys fall back
// to [SortPopularity]; a bad sort parameter is never a user-visible error.
func ParseSort(raw string) Sort {
	switch Sort(raw) {
	case SortPopularity, SortTitle, SortYear, SortArtist,
		SortEnergy, SortDanceability, SortValence:
		return Sort(raw)
	}
	return SortPopularity
}
