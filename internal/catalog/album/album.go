// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

// Package album manages the release side of the catalogue. Albums carry
// the release dates that songs inherit for year filtering and sorting.
package album

import (
	"context"
	"time"
)

// Album is a release in the catalogue.
type Album struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	SpotifyID   *string    `json:"spotify_id,omitempty"`
	ReleaseDate *time.Time `json:"release_date"`
	ImageURL    *string    `json:"image_url,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// Filter holds the parameters for a filtered album list query.
type Filter struct {
	Query string `json:"q,omitempty"` // substring match on title
	Page  int    `json:"page,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// Repository defines the data access contract for the album domain.
type Repository interface {
	List(context context.Context, filter Filter) ([]*Album, int, error)
	FindByID(context context.Context, id string) (*Album, error)
	FindBySlug(context context.Context, slug string) (*Album, error)
	FindBySpotifyID(context context.Context, spotifyID string) (*Album, error)
	Create(context context.Context, album *Album) error
	Update(context context.Context, album *Album) error
	SoftDelete(context context.Context, id string) error
}
