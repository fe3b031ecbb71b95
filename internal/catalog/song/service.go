// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package song

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/theveganplaylist/server/internal/genre"
	"github.com/theveganplaylist/server/internal/platform/constants"
	"github.com/theveganplaylist/server/internal/platform/validate"
	"github.com/theveganplaylist/server/pkg/pagination"
	"github.com/theveganplaylist/server/pkg/slug"
	"github.com/theveganplaylist/server/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic of the song catalogue: search,
// lookups, admin mutations, the cached filter-options payload, and the
// genre backfill.
type Service struct {
	repo      Repository
	hierarchy *genre.Hierarchy
	cache     *redis.Client // nil disables filter-options caching
	logger    *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, hierarchy *genre.Hierarchy, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		hierarchy: hierarchy,
		cache:     cache,
		logger:    logger,
	}
}

// # Search & Lookups

/*
Search runs one faceted catalogue query.

It returns the result page, the pagination metadata computed from the
distinct match count, and the normalized filter echo the client uses to
restore its UI state. A page beyond the last one yields an empty page with
honest metadata, not an error.
*/
func (service *Service) Search(context context.Context, filter FilterSpec) ([]*Song, pagination.Meta, Echo, error) {
	echo := filter.Echo(service.hierarchy)

	songs, total, err := service.repo.List(context, filter)
	if err != nil {
		return nil, pagination.Meta{}, echo, err
	}

	window := pagination.Clamp(filter.Page, filter.Limit)
	meta := pagination.NewMeta(window.Page, window.Limit, total)

	return songs, meta, echo, nil
}

/*
Get fetches a single song by UUID or URL slug, detected by shape.
*/
func (service *Service) Get(context context.Context, identifier string) (*Song, error) {
	if isUUID(identifier) {
		return service.repo.FindByID(context, identifier)
	}
	return service.repo.FindBySlug(context, identifier)
}

/*
FindBySpotifyID fetches the song imported from the given upstream track.
*/
func (service *Service) FindBySpotifyID(context context.Context, spotifyID string) (*Song, error) {
	return service.repo.FindBySpotifyID(context, spotifyID)
}

// # Admin Mutations

/*
Create validates and persists a new song.

A missing ID gets a fresh UUIDv7 and a missing slug derives from the
title. The genre/parent-genre consistency invariant is enforced here: the
parent is always recomputed from the final genre value, so an admin can
never store a mismatched pair.
*/
func (service *Service) Create(context context.Context, song *Song) error {
	if err := service.validate(song); err != nil {
		return err
	}

	if song.ID == "" {
		song.ID = uuidv7.New()
	}
	if song.Slug == "" {
		song.Slug = slug.From(song.Title)
	}

	service.reclassify(song)

	if err := service.repo.Create(context, song); err != nil {
		return err
	}

	service.invalidateOptions(context)
	service.logger.Info("song_created",
		slog.String("song_id", song.ID),
		slog.String("title", song.Title),
	)

	return nil
}

/*
Update validates and persists changes to a song. The caller passes the
full merged entity; the HTTP layer overlays the partial request body onto
the stored record first.
*/
func (service *Service) Update(context context.Context, song *Song) error {
	if err := service.validate(song); err != nil {
		return err
	}

	service.reclassify(song)

	if err := service.repo.Update(context, song); err != nil {
		return err
	}

	service.invalidateOptions(context)
	service.logger.Info("song_updated", slog.String("song_id", song.ID))

	return nil
}

/*
Delete removes a song from discovery via soft delete.
*/
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.SoftDelete(context, id); err != nil {
		return err
	}

	service.invalidateOptions(context)
	service.logger.Info("song_deleted", slog.String("song_id", id))

	return nil
}

// validate applies the shared business rules for create and update.
func (service *Service) validate(song *Song) error {
	validator := &validate.Validator{}
	validator.Required("title", song.Title).MaxLen("title", song.Title, 500)

	if song.Slug != "" {
		validator.Slug("slug", song.Slug)
	}
	for _, artistID := range song.ArtistIDs {
		validator.UUID("artist_ids", artistID)
	}

	validator.UnitInterval("energy", song.Energy)
	validator.UnitInterval("danceability", song.Danceability)
	validator.UnitInterval("valence", song.Valence)
	validator.UnitInterval("acousticness", song.Acousticness)
	validator.UnitInterval("instrumentalness", song.Instrumentalness)
	validator.UnitInterval("liveness", song.Liveness)
	validator.UnitInterval("speechiness", song.Speechiness)

	validator.Range("popularity", song.Popularity, 0, 100)
	if song.Key != nil {
		validator.Range("key", *song.Key, 0, 11)
	}
	if song.Mode != nil {
		validator.Range("mode", *song.Mode, 0, 1)
	}

	return validator.Err()
}

// reclassify re-derives the cached parent genre from the song's genre so
// the stored pair stays consistent with the hierarchy.
func (service *Service) reclassify(song *Song) {
	if song.Genre == nil || *song.Genre == "" {
		song.Genre = nil
		song.ParentGenre = nil
		return
	}

	parent := service.hierarchy.ParentOf(*song.Genre)
	song.ParentGenre = &parent
}

// # Filter Options

/*
FilterOptions assembles the payload behind the client's filter panel: the
distinct stored values of every facet, the genre tree, and the catalogue's
release-year span.

The payload only changes when the catalogue does, so it is served from
Redis with a short TTL; cache failures degrade to a direct database read
rather than an error.
*/
func (service *Service) FilterOptions(context context.Context) (*FilterOptions, error) {
	if cached := service.cachedOptions(context); cached != nil {
		return cached, nil
	}

	options, err := service.repo.FacetValues(context)
	if err != nil {
		return nil, err
	}

	options.ParentGenres = service.hierarchy.Parents()
	options.Subgenres = make(map[string][]string, len(options.ParentGenres))
	for _, parent := range options.ParentGenres {
		options.Subgenres[parent] = service.hierarchy.Subgenres(parent)
	}

	service.storeOptions(context, options)

	return options, nil
}

func (service *Service) cachedOptions(context context.Context) *FilterOptions {
	if service.cache == nil {
		return nil
	}

	raw, err := service.cache.Get(context, constants.RedisKeyFilterOptions).Bytes()
	if err != nil {
		return nil
	}

	options := &FilterOptions{}
	if err := json.Unmarshal(raw, options); err != nil {
		service.logger.Warn("filter_options_cache_corrupt", slog.String("error", err.Error()))
		return nil
	}

	return options
}

func (service *Service) storeOptions(context context.Context, options *FilterOptions) {
	if service.cache == nil {
		return
	}

	raw, err := json.Marshal(options)
	if err != nil {
		return
	}

	if err := service.cache.Set(context, constants.RedisKeyFilterOptions, raw, constants.FilterOptionsTTL).Err(); err != nil {
		service.logger.Warn("filter_options_cache_write_failed", slog.String("error", err.Error()))
	}
}

// invalidateOptions drops the cached filter options after a catalogue
// write; the next filter-panel read repopulates it from the database.
func (service *Service) invalidateOptions(context context.Context) {
	if service.cache == nil {
		return
	}

	if err := service.cache.Del(context, constants.RedisKeyFilterOptions).Err(); err != nil {
		service.logger.Warn("filter_options_cache_invalidate_failed", slog.String("error", err.Error()))
	}
}

// # Genre Backfill

/*
Backfill reclassifies songs from their artists' live raw tags.

With onlyMissing set it touches only songs without a stored genre;
otherwise it recomputes the whole catalogue. Classification is pure and
idempotent, so running the backfill twice leaves the data unchanged. It
returns the number of songs written.
*/
func (service *Service) Backfill(context context.Context, onlyMissing bool) (int, error) {
	started := time.Now()

	rows, err := service.repo.ListForBackfill(context, onlyMissing)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, row := range rows {
		if err := context.Err(); err != nil {
			return updated, err
		}

		cls := service.hierarchy.Classify(row.ArtistGenres)
		if err := service.repo.UpdateClassification(context, row.ID, cls); err != nil {
			return updated, err
		}
		updated++
	}

	service.invalidateOptions(context)
	service.logger.Info("genre_backfill_completed",
		slog.Int("songs", updated),
		slog.Bool("only_missing", onlyMissing),
		slog.Duration("elapsed", time.Since(started)),
	)

	return updated, nil
}

// isUUID distinguishes a UUID identifier from a slug by length.
func isUUID(s string) bool {
	return len(s) == 36
}
