// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package song

import (
	"context"

	"github.com/theveganplaylist/server/internal/genre"
)

// # Song Data Access

// FilterOptions holds the distinct values available for each facet plus
// the catalogue's release-year span, for populating the client's filter
// panel.
type FilterOptions struct {
	VeganFocus          []string `json:"vegan_focus"`
	AnimalCategory      []string `json:"animal_category"`
	AdvocacyStyle       []string `json:"advocacy_style"`
	AdvocacyIssues      []string `json:"advocacy_issues"`
	LyricalExplicitness []string `json:"lyrical_explicitness"`

	ParentGenres []string            `json:"parent_genres"`
	Subgenres    map[string][]string `json:"subgenres"` // parent → members

	YearMin *int `json:"year_min"`
	YearMax *int `json:"year_max"`
}

// BackfillRow is one song queued for genre reclassification: its identity
// plus the concatenated raw genre tags of its artists, in artist position
// order (upstream tag order is a relevance signal and must survive the
// round-trip through storage).
type BackfillRow struct {
	ID           string
	ArtistGenres []string
}

// Repository defines the data access contract for the song domain.
type Repository interface {

	/*
		List returns one filtered, sorted result page and the total number
		of distinct matching songs.

		Parameters:
		  - context: context.Context
		  - filter: FilterSpec (normalized search parameters)

		Returns:
		  - []*Song: The result page, hydrated with artists and album
		  - int: Total distinct songs matching the filter predicates
		  - error: Database execution failures
	*/
	List(context context.Context, filter FilterSpec) ([]*Song, int, error)

	/*
		FindByID returns the song with the given ID.

		Returns ErrNotFound if missing or soft-deleted.
	*/
	FindByID(context context.Context, id string) (*Song, error)

	/*
		FindBySlug returns the song matching the unique URL identifier.

		Returns ErrNotFound if missing or soft-deleted.
	*/
	FindBySlug(context context.Context, slug string) (*Song, error)

	/*
		FindBySpotifyID returns the song imported from the given upstream
		track, or ErrNotFound. Used to keep imports idempotent.
	*/
	FindBySpotifyID(context context.Context, spotifyID string) (*Song, error)

	/*
		Create persists a new song and its artist junction rows in one
		transaction.
	*/
	Create(context context.Context, song *Song) error

	/*
		Update persists changes to a song's mutable fields. When ArtistIDs
		is non-nil the artist junction rows are replaced in the same
		transaction.
	*/
	Update(context context.Context, song *Song) error

	/*
		SoftDelete marks a song as deleted without physical row removal.
	*/
	SoftDelete(context context.Context, id string) error

	/*
		FacetValues returns the distinct stored values of every facet plus
		the album release-year span.
	*/
	FacetValues(context context.Context) (*FilterOptions, error)

	/*
		ListForBackfill returns the songs eligible for genre
		reclassification together with their artists' live raw tags. With
		onlyMissing set, songs that already carry a classification are
		skipped.
	*/
	ListForBackfill(context context.Context, onlyMissing bool) ([]BackfillRow, error)

	/*
		UpdateClassification rewrites the cached (genre, parent genre)
		pair of one song.
	*/
	UpdateClassification(context context.Context, id string, cls genre.Classification) error
}
