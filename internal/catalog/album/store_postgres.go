// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package album

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theveganplaylist/server/internal/platform/apperr"
	"github.com/theveganplaylist/server/internal/platform/database/schema"
	"github.com/theveganplaylist/server/internal/platform/dberr"
	"github.com/theveganplaylist/server/pkg/pagination"
)

// albumRepository implements the [Repository] interface using pgx.
type albumRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed album store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &albumRepository{pool: pool}
}

var albumColumns = strings.Join([]string{
	"al." + schema.CatalogAlbum.ID,
	"al." + schema.CatalogAlbum.Title,
	"al." + schema.CatalogAlbum.Slug,
	"al." + schema.CatalogAlbum.SpotifyID,
	"al." + schema.CatalogAlbum.ReleaseDate,
	"al." + schema.CatalogAlbum.ImageURL,
	"al." + schema.CatalogAlbum.CreatedAt,
	"al." + schema.CatalogAlbum.UpdatedAt,
}, ", ")

func scanAlbum(row pgx.Row) (*Album, error) {
	album := &Album{}
	err := row.Scan(
		&album.ID,
		&album.Title,
		&album.Slug,
		&album.SpotifyID,
		&album.ReleaseDate,
		&album.ImageURL,
		&album.CreatedAt,
		&album.UpdatedAt,
	)
	return album, err
}

/*
List returns a filtered, paginated slice of albums ordered by release
date, newest first with nulls last.
*/
func (repository *albumRepository) List(context context.Context, filter Filter) ([]*Album, int, error) {
	var args []any
	where := fmt.Sprintf("WHERE al.%s IS NULL", schema.CatalogAlbum.DeletedAt)
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where += fmt.Sprintf(" AND al.%s ILIKE $%d", schema.CatalogAlbum.Title, len(args))
	}

	countQuery := fmt.Sprintf("SELECT COUNT(al.%s) FROM %s al %s",
		schema.CatalogAlbum.ID, schema.CatalogAlbum.Table, where)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to count albums: %w", err)
	}

	window := pagination.Clamp(filter.Page, filter.Limit)
	query := fmt.Sprintf("SELECT %s FROM %s al %s ORDER BY al.%s DESC NULLS LAST, al.%s ASC LIMIT $%d OFFSET $%d",
		albumColumns, schema.CatalogAlbum.Table, where,
		schema.CatalogAlbum.ReleaseDate, schema.CatalogAlbum.Title,
		len(args)+1, len(args)+2)
	args = append(args, window.Limit, window.Offset())

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list albums: %w", err)
	}
	defer rows.Close()

	albums := []*Album{}
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan album: %w", err)
		}
		albums = append(albums, album)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to read album rows: %w", err)
	}

	return albums, total, nil
}

func (repository *albumRepository) FindByID(context context.Context, id string) (*Album, error) {
	return repository.findBy(context, schema.CatalogAlbum.ID, id, "album")
}

func (repository *albumRepository) FindBySlug(context context.Context, slug string) (*Album, error) {
	return repository.findBy(context, schema.CatalogAlbum.Slug, slug, "album_slug")
}

func (repository *albumRepository) FindBySpotifyID(context context.Context, spotifyID string) (*Album, error) {
	return repository.findBy(context, schema.CatalogAlbum.SpotifyID, spotifyID, "album_spotify_id")
}

func (repository *albumRepository) findBy(context context.Context, column, value, resource string) (*Album, error) {
	query := fmt.Sprintf("SELECT %s FROM %s al WHERE al.%s = $1 AND al.%s IS NULL",
		albumColumns, schema.CatalogAlbum.Table, column, schema.CatalogAlbum.DeletedAt)

	album, err := scanAlbum(repository.pool.QueryRow(context, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(resource)
		}
		return nil, fmt.Errorf("postgres: failed to find album by %s: %w", column, err)
	}

	return album, nil
}

/*
Create persists a new album.
*/
func (repository *albumRepository) Create(context context.Context, album *Album) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		schema.CatalogAlbum.Table,
		schema.CatalogAlbum.ID, schema.CatalogAlbum.Title, schema.CatalogAlbum.Slug,
		schema.CatalogAlbum.SpotifyID, schema.CatalogAlbum.ReleaseDate, schema.CatalogAlbum.ImageURL,
	)

	_, err := repository.pool.Exec(context, query,
		album.ID, album.Title, album.Slug,
		album.SpotifyID, album.ReleaseDate, album.ImageURL,
	)
	if err != nil {
		return dberr.Wrap(err, "create album")
	}

	return nil
}

/*
Update rewrites an album's mutable columns.
*/
func (repository *albumRepository) Update(context context.Context, album *Album) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $6 AND %s IS NULL
	`,
		schema.CatalogAlbum.Table,
		schema.CatalogAlbum.Title, schema.CatalogAlbum.Slug, schema.CatalogAlbum.SpotifyID,
		schema.CatalogAlbum.ReleaseDate, schema.CatalogAlbum.ImageURL,
		schema.CatalogAlbum.UpdatedAt,
		schema.CatalogAlbum.ID, schema.CatalogAlbum.DeletedAt,
	)

	result, err := repository.pool.Exec(context, query,
		album.Title, album.Slug, album.SpotifyID,
		album.ReleaseDate, album.ImageURL,
		album.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update album")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("album")
	}

	return nil
}

/*
SoftDelete hides an album without physical row removal.
*/
func (repository *albumRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL",
		schema.CatalogAlbum.Table, schema.CatalogAlbum.DeletedAt,
		schema.CatalogAlbum.ID, schema.CatalogAlbum.DeletedAt)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete album: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("album")
	}

	return nil
}
