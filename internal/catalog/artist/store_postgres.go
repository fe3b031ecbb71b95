// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package artist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theveganplaylist/server/internal/genre"
	"github.com/theveganplaylist/server/internal/platform/apperr"
	"github.com/theveganplaylist/server/internal/platform/database/schema"
	"github.com/theveganplaylist/server/internal/platform/dberr"
	"github.com/theveganplaylist/server/pkg/pagination"
)

// # PostgreSQL Repository

// artistRepository implements the [Repository] interface using pgx.
type artistRepository struct {
	pool      *pgxpool.Pool
	hierarchy *genre.Hierarchy
}

// NewRepository constructs a PostgreSQL backed artist store.
func NewRepository(pool *pgxpool.Pool, hierarchy *genre.Hierarchy) Repository {
	return &artistRepository{pool: pool, hierarchy: hierarchy}
}

var artistColumns = strings.Join([]string{
	"a." + schema.CatalogArtist.ID,
	"a." + schema.CatalogArtist.Name,
	"a." + schema.CatalogArtist.Slug,
	"a." + schema.CatalogArtist.SpotifyID,
	"a." + schema.CatalogArtist.Genres,
	"a." + schema.CatalogArtist.Popularity,
	"a." + schema.CatalogArtist.Followers,
	"a." + schema.CatalogArtist.ImageURL,
	"a." + schema.CatalogArtist.Bio,
	"a." + schema.CatalogArtist.CreatedAt,
	"a." + schema.CatalogArtist.UpdatedAt,
}, ", ")

func scanArtist(row pgx.Row) (*Artist, error) {
	artist := &Artist{}
	err := row.Scan(
		&artist.ID,
		&artist.Name,
		&artist.Slug,
		&artist.SpotifyID,
		&artist.Genres,
		&artist.Popularity,
		&artist.Followers,
		&artist.ImageURL,
		&artist.Bio,
		&artist.CreatedAt,
		&artist.UpdatedAt,
	)
	return artist, err
}

/*
List returns a filtered, paginated slice of artists and the total count.

The artist filter is a reduced cousin of the song planner: a name
substring match plus the same genre-overlap predicates, built with the
same immutable-fragment rendering. A COUNT(*) window function would be
safe here (no multiplying joins), but the count runs as its own query for
symmetry with the song store.
*/
func (repository *artistRepository) List(context context.Context, filter Filter) ([]*Artist, int, error) {
	var conditions []string
	var args []any

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		conditions = append(conditions, fmt.Sprintf("a.%s ILIKE $%d", schema.CatalogArtist.Name, len(args)))
	}

	if len(filter.Genres) > 0 {
		args = append(args, filter.Genres)
		conditions = append(conditions, fmt.Sprintf("a.%s && $%d", schema.CatalogArtist.Genres, len(args)))
	}

	if len(filter.ParentGenres) > 0 {
		args = append(args, repository.hierarchy.Expand(filter.ParentGenres))
		conditions = append(conditions, fmt.Sprintf("a.%s && $%d", schema.CatalogArtist.Genres, len(args)))
	}

	where := fmt.Sprintf("WHERE a.%s IS NULL", schema.CatalogArtist.DeletedAt)
	if len(conditions) > 0 {
		where += " AND " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(a.%s) FROM %s a %s",
		schema.CatalogArtist.ID, schema.CatalogArtist.Table, where)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to count artists: %w", err)
	}

	window := pagination.Clamp(filter.Page, filter.Limit)
	query := fmt.Sprintf("SELECT %s FROM %s a %s ORDER BY a.%s DESC, a.%s ASC LIMIT $%d OFFSET $%d",
		artistColumns, schema.CatalogArtist.Table, where,
		schema.CatalogArtist.Popularity, schema.CatalogArtist.Name,
		len(args)+1, len(args)+2)
	args = append(args, window.Limit, window.Offset())

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list artists: %w", err)
	}
	defer rows.Close()

	artists := []*Artist{}
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan artist: %w", err)
		}
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to read artist rows: %w", err)
	}

	return artists, total, nil
}

func (repository *artistRepository) FindByID(context context.Context, id string) (*Artist, error) {
	return repository.findBy(context, schema.CatalogArtist.ID, id, "artist")
}

func (repository *artistRepository) FindBySlug(context context.Context, slug string) (*Artist, error) {
	return repository.findBy(context, schema.CatalogArtist.Slug, slug, "artist_slug")
}

func (repository *artistRepository) FindBySpotifyID(context context.Context, spotifyID string) (*Artist, error) {
	return repository.findBy(context, schema.CatalogArtist.SpotifyID, spotifyID, "artist_spotify_id")
}

func (repository *artistRepository) findBy(context context.Context, column, value, resource string) (*Artist, error) {
	query := fmt.Sprintf("SELECT %s FROM %s a WHERE a.%s = $1 AND a.%s IS NULL",
		artistColumns, schema.CatalogArtist.Table, column, schema.CatalogArtist.DeletedAt)

	artist, err := scanArtist(repository.pool.QueryRow(context, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(resource)
		}
		return nil, fmt.Errorf("postgres: failed to find artist by %s: %w", column, err)
	}

	return artist, nil
}

/*
Create persists a new artist.
*/
func (repository *artistRepository) Create(context context.Context, artist *Artist) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		schema.CatalogArtist.Table,
		schema.CatalogArtist.ID, schema.CatalogArtist.Name, schema.CatalogArtist.Slug,
		schema.CatalogArtist.SpotifyID, schema.CatalogArtist.Genres,
		schema.CatalogArtist.Popularity, schema.CatalogArtist.Followers,
		schema.CatalogArtist.ImageURL, schema.CatalogArtist.Bio,
	)

	_, err := repository.pool.Exec(context, query,
		artist.ID, artist.Name, artist.Slug,
		artist.SpotifyID, artist.Genres,
		artist.Popularity, artist.Followers,
		artist.ImageURL, artist.Bio,
	)
	if err != nil {
		return dberr.Wrap(err, "create artist")
	}

	return nil
}

/*
Update rewrites an artist's mutable columns. The raw genre list is
replaced wholesale; per-tag edits would lose upstream ordering.
*/
func (repository *artistRepository) Update(context context.Context, artist *Artist) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $1, %s = $2, %s = $3, %s = $4,
			%s = $5, %s = $6, %s = $7, %s = $8,
			%s = NOW()
		WHERE %s = $9 AND %s IS NULL
	`,
		schema.CatalogArtist.Table,
		schema.CatalogArtist.Name, schema.CatalogArtist.Slug, schema.CatalogArtist.SpotifyID, schema.CatalogArtist.Genres,
		schema.CatalogArtist.Popularity, schema.CatalogArtist.Followers, schema.CatalogArtist.ImageURL, schema.CatalogArtist.Bio,
		schema.CatalogArtist.UpdatedAt,
		schema.CatalogArtist.ID, schema.CatalogArtist.DeletedAt,
	)

	result, err := repository.pool.Exec(context, query,
		artist.Name, artist.Slug, artist.SpotifyID, artist.Genres,
		artist.Popularity, artist.Followers, artist.ImageURL, artist.Bio,
		artist.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update artist")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("artist")
	}

	return nil
}

/*
SoftDelete hides an artist without physical row removal.
*/
func (repository *artistRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL",
		schema.CatalogArtist.Table, schema.CatalogArtist.DeletedAt,
		schema.CatalogArtist.ID, schema.CatalogArtist.DeletedAt)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete artist: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("artist")
	}

	return nil
}
