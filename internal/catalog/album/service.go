// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package album

import (
	"context"
	"log/slog"

	"github.com/theveganplaylist/server/internal/platform/validate"
	"github.com/theveganplaylist/server/pkg/pagination"
	"github.com/theveganplaylist/server/pkg/slug"
	"github.com/theveganplaylist/server/pkg/uuidv7"
)

// Service orchestrates the business logic for the album catalogue.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new album [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List retrieves a filtered, paginated collection of albums.
func (service *Service) List(context context.Context, filter Filter) ([]*Album, pagination.Meta, error) {
	albums, total, err := service.repo.List(context, filter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	window := pagination.Clamp(filter.Page, filter.Limit)
	return albums, pagination.NewMeta(window.Page, window.Limit, total), nil
}

// Get fetches a single album by UUID or URL slug.
func (service *Service) Get(context context.Context, identifier string) (*Album, error) {
	if len(identifier) == 36 {
		return service.repo.FindByID(context, identifier)
	}
	return service.repo.FindBySlug(context, identifier)
}

// FindBySpotifyID fetches the album imported from the given upstream ID.
func (service *Service) FindBySpotifyID(context context.Context, spotifyID string) (*Album, error) {
	return service.repo.FindBySpotifyID(context, spotifyID)
}

// Create validates and persists a new album.
func (service *Service) Create(context context.Context, album *Album) error {
	if err := service.validate(album); err != nil {
		return err
	}

	if album.ID == "" {
		album.ID = uuidv7.New()
	}
	if album.Slug == "" {
		album.Slug = slug.From(album.Title)
	}

	if err := service.repo.Create(context, album); err != nil {
		return err
	}

	service.logger.Info("album_created",
		slog.String("album_id", album.ID),
		slog.String("title", album.Title),
	)

	return nil
}

// Update validates and persists changes to an album.
func (service *Service) Update(context context.Context, album *Album) error {
	if err := service.validate(album); err != nil {
		return err
	}

	if err := service.repo.Update(context, album); err != nil {
		return err
	}

	service.logger.Info("album_updated", slog.String("album_id", album.ID))

	return nil
}

// Delete removes an album from discovery via soft delete.
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.Info("album_deleted", slog.String("album_id", id))

	return nil
}

func (service *Service) validate(album *Album) error {
	validator := &validate.Validator{}
	validator.Required("title", album.Title).MaxLen("title", album.Title, 500)

	if album.Slug != "" {
		validator.Slug("slug", album.Slug)
	}

	return validator.Err()
}
