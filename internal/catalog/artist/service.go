// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package artist

import (
	"context"
	"log/slog"

	"github.com/theveganplaylist/server/internal/platform/validate"
	"github.com/theveganplaylist/server/pkg/pagination"
	"github.com/theveganplaylist/server/pkg/slug"
	"github.com/theveganplaylist/server/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for the artist catalogue.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new artist [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
List retrieves a filtered, paginated collection of artists plus the
pagination metadata.
*/
func (service *Service) List(context context.Context, filter Filter) ([]*Artist, pagination.Meta, error) {
	artists, total, err := service.repo.List(context, filter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	window := pagination.Clamp(filter.Page, filter.Limit)
	return artists, pagination.NewMeta(window.Page, window.Limit, total), nil
}

/*
Get fetches a single artist by UUID or URL slug.
*/
func (service *Service) Get(context context.Context, identifier string) (*Artist, error) {
	if len(identifier) == 36 {
		return service.repo.FindByID(context, identifier)
	}
	return service.repo.FindBySlug(context, identifier)
}

/*
FindBySpotifyID fetches the artist imported from the given upstream ID.
*/
func (service *Service) FindBySpotifyID(context context.Context, spotifyID string) (*Artist, error) {
	return service.repo.FindBySpotifyID(context, spotifyID)
}

/*
Create validates and persists a new artist, generating identity and slug
when absent.
*/
func (service *Service) Create(context context.Context, artist *Artist) error {
	if err := service.validate(artist); err != nil {
		return err
	}

	if artist.ID == "" {
		artist.ID = uuidv7.New()
	}
	if artist.Slug == "" {
		artist.Slug = slug.From(artist.Name)
	}

	if err := service.repo.Create(context, artist); err != nil {
		return err
	}

	service.logger.Info("artist_created",
		slog.String("artist_id", artist.ID),
		slog.String("name", artist.Name),
	)

	return nil
}

/*
Update validates and persists changes to an artist. Rewriting the raw
genre list here is what makes a later backfill produce different song
classifications; the stored song genres are not touched until that
backfill runs.
*/
func (service *Service) Update(context context.Context, artist *Artist) error {
	if err := service.validate(artist); err != nil {
		return err
	}

	if err := service.repo.Update(context, artist); err != nil {
		return err
	}

	service.logger.Info("artist_updated", slog.String("artist_id", artist.ID))

	return nil
}

/*
Delete removes an artist from discovery via soft delete.
*/
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.Info("artist_deleted", slog.String("artist_id", id))

	return nil
}

func (service *Service) validate(artist *Artist) error {
	validator := &validate.Validator{}
	validator.Required("name", artist.Name).MaxLen("name", artist.Name, 300)
	validator.Range("popularity", artist.Popularity, 0, 100)

	if artist.Slug != "" {
		validator.Slug("slug", artist.Slug)
	}

	return validator.Err()
}
