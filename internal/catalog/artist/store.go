// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package artist

import "context"

// # Artist Data Access

// Repository defines the data access contract for the artist domain.
type Repository interface {

	/*
		List returns a filtered, paginated slice of artists and the total
		count of distinct matches.
	*/
	List(context context.Context, filter Filter) ([]*Artist, int, error)

	/*
		FindByID returns the artist with the given ID, or ErrNotFound if
		missing or soft-deleted.
	*/
	FindByID(context context.Context, id string) (*Artist, error)

	/*
		FindBySlug returns the artist matching the unique URL identifier.
	*/
	FindBySlug(context context.Context, slug string) (*Artist, error)

	/*
		FindBySpotifyID returns the artist imported from the given Spotify
		identity, for import idempotency checks.
	*/
	FindBySpotifyID(context context.Context, spotifyID string) (*Artist, error)

	/*
		Create persists a new artist.
	*/
	Create(context context.Context, artist *Artist) error

	/*
		Update persists changes to an artist's mutable fields, including a
		full rewrite of the raw genre tag list.
	*/
	Update(context context.Context, artist *Artist) error

	/*
		SoftDelete marks an artist as deleted without physical row removal.
	*/
	SoftDelete(context context.Context, id string) error
}
