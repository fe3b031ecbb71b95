// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

/*
PostgreSQL implementation of the song repository.

It leans on a few Postgres features that fit the catalogue's shape:
  - JSON Aggregation: artist summaries are folded into each song row via a
    json_agg sub-query, avoiding N+1 fetches.
  - Array Operators: facet and genre filters use the && overlap operator
    against text[] columns.
  - Lateral Unnest: the backfill query flattens every artist's tag array
    while preserving both artist position and in-array tag order.

List runs the page query and the count query from the same rendered
predicate list, so the pagination metadata can never disagree with the
rows returned.
*/
package song

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theveganplaylist/server/internal/genre"
	"github.com/theveganplaylist/server/internal/platform/apperr"
	"github.com/theveganplaylist/server/internal/platform/database/schema"
	"github.com/theveganplaylist/server/internal/platform/dberr"
)

// # PostgreSQL Repository

// songRepository implements the [Repository] interface using pgx.
type songRepository struct {
	pool    *pgxpool.Pool
	planner *Planner
}

// NewRepository constructs a PostgreSQL backed song store. The planner is
// shared so the store and any cache key derivation see identical plans.
func NewRepository(pool *pgxpool.Pool, planner *Planner) Repository {
	return &songRepository{pool: pool, planner: planner}
}

// songColumns is the canonical select list; scanTargets must stay in the
// exact same order.
var songColumns = strings.Join([]string{
	"s." + schema.CatalogSong.ID,
	"s." + schema.CatalogSong.Title,
	"s." + schema.CatalogSong.Slug,
	"s." + schema.CatalogSong.SpotifyID,
	"s." + schema.CatalogSong.AlbumID,
	"s." + schema.CatalogSong.Genre,
	"s." + schema.CatalogSong.ParentGenre,
	"s." + schema.CatalogSong.VeganFocus,
	"s." + schema.CatalogSong.AnimalCategory,
	"s." + schema.CatalogSong.AdvocacyStyle,
	"s." + schema.CatalogSong.AdvocacyIssues,
	"s." + schema.CatalogSong.LyricalExplicitness,
	"s." + schema.CatalogSong.Energy,
	"s." + schema.CatalogSong.Danceability,
	"s." + schema.CatalogSong.Valence,
	"s." + schema.CatalogSong.Acousticness,
	"s." + schema.CatalogSong.Instrumentalness,
	"s." + schema.CatalogSong.Liveness,
	"s." + schema.CatalogSong.Speechiness,
	"s." + schema.CatalogSong.Tempo,
	"s." + schema.CatalogSong.Loudness,
	"s." + schema.CatalogSong.Key,
	"s." + schema.CatalogSong.Mode,
	"s." + schema.CatalogSong.TimeSignature,
	"s." + schema.CatalogSong.Popularity,
	"s." + schema.CatalogSong.Review,
	"s." + schema.CatalogSong.YouTubeID,
	"s." + schema.CatalogSong.Featured,
	"s." + schema.CatalogSong.CreatedAt,
	"s." + schema.CatalogSong.UpdatedAt,
	"al." + schema.CatalogAlbum.Title,
	"al." + schema.CatalogAlbum.ReleaseDate,
	"al." + schema.CatalogAlbum.ImageURL,
}, ", ")

// artistsSubquery folds the song's artists into one JSON column, ordered
// by their credited position.
var artistsSubquery = fmt.Sprintf(`COALESCE((
	SELECT json_agg(json_build_object('id', a.%s, 'name', a.%s, 'slug', a.%s) ORDER BY sa.%s)
	FROM %s sa
	JOIN %s a ON a.%s = sa.%s
	WHERE sa.%s = s.%s
), '[]') AS artists`,
	schema.CatalogArtist.ID, schema.CatalogArtist.Name, schema.CatalogArtist.Slug,
	schema.CatalogSongArtist.Position,
	schema.CatalogSongArtist.Table,
	schema.CatalogArtist.Table, schema.CatalogArtist.ID, schema.CatalogSongArtist.ArtistID,
	schema.CatalogSongArtist.SongID, schema.CatalogSong.ID,
)

// fromClause joins the (soft-delete aware) album row needed for release
// dates, year filters, and year sorting.
var fromClause = fmt.Sprintf("FROM %s s LEFT JOIN %s al ON al.%s = s.%s AND al.%s IS NULL",
	schema.CatalogSong.Table,
	schema.CatalogAlbum.Table, schema.CatalogAlbum.ID, schema.CatalogSong.AlbumID,
	schema.CatalogAlbum.DeletedAt,
)

// albumScan receives the LEFT JOINed album columns, all nullable.
type albumScan struct {
	Title       *string
	ReleaseDate *time.Time
	ImageURL    *string
}

// scanTargets binds the [songColumns] select list plus the artists JSON
// column onto a Song.
func scanTargets(s *Song, album *albumScan, artistsJSON *[]byte) []any {
	return []any{
		&s.ID,
		&s.Title,
		&s.Slug,
		&s.SpotifyID,
		&s.AlbumID,
		&s.Genre,
		&s.ParentGenre,
		&s.VeganFocus,
		&s.AnimalCategory,
		&s.AdvocacyStyle,
		&s.AdvocacyIssues,
		&s.LyricalExplicitness,
		&s.Energy,
		&s.Danceability,
		&s.Valence,
		&s.Acousticness,
		&s.Instrumentalness,
		&s.Liveness,
		&s.Speechiness,
		&s.Tempo,
		&s.Loudness,
		&s.Key,
		&s.Mode,
		&s.TimeSignature,
		&s.Popularity,
		&s.Review,
		&s.YouTubeID,
		&s.Featured,
		&s.CreatedAt,
		&s.UpdatedAt,
		&album.Title,
		&album.ReleaseDate,
		&album.ImageURL,
		artistsJSON,
	}
}

// hydrate finishes a scanned row: attaches the album summary and decodes
// the aggregated artists.
func hydrate(s *Song, album albumScan, artistsJSON []byte) error {
	if s.AlbumID != nil && album.Title != nil {
		s.Album = &AlbumRef{
			ID:          *s.AlbumID,
			Title:       *album.Title,
			ReleaseDate: album.ReleaseDate,
			ImageURL:    album.ImageURL,
		}
	}

	s.Artists = []ArtistRef{}
	if err := json.Unmarshal(artistsJSON, &s.Artists); err != nil {
		return fmt.Errorf("postgres: failed to unmarshal artists: %w", err)
	}

	return nil
}

// # Repository Implementation

/*
List returns one filtered, sorted result page and the total number of
distinct matching songs.

The count query executes first, reusing the page query's rendered
predicates verbatim. It counts DISTINCT song IDs rather than raw rows
because the artist join used by genre matching can multiply rows; a
COUNT(*) window function in the page query would over-count here.
*/
func (repository *songRepository) List(context context.Context, filter FilterSpec) ([]*Song, int, error) {
	plan, countPlan := repository.planner.Plans(filter)

	countWhere, countArgs, _ := Render(countPlan.Predicates, 1)
	countQuery := fmt.Sprintf("SELECT COUNT(DISTINCT s.%s) %s WHERE s.%s IS NULL%s",
		schema.CatalogSong.ID, fromClause, schema.CatalogSong.DeletedAt, andClause(countWhere))

	var total int
	if err := repository.pool.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to count songs: %w", err)
	}

	where, args, next := Render(plan.Predicates, 1)
	query := fmt.Sprintf("SELECT %s, %s %s WHERE s.%s IS NULL%s ORDER BY %s LIMIT $%d OFFSET $%d",
		songColumns, artistsSubquery, fromClause,
		schema.CatalogSong.DeletedAt, andClause(where),
		plan.OrderBy, next, next+1)
	args = append(args, plan.Limit, plan.Offset)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list songs: %w", err)
	}
	defer rows.Close()

	songs := []*Song{}
	for rows.Next() {
		song := &Song{}
		var album albumScan
		var artistsJSON []byte

		if err := rows.Scan(scanTargets(song, &album, &artistsJSON)...); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan song: %w", err)
		}
		if err := hydrate(song, album, artistsJSON); err != nil {
			return nil, 0, err
		}

		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to read song rows: %w", err)
	}

	return songs, total, nil
}

// andClause prefixes a rendered predicate conjunction for appending to the
// base soft-delete condition.
func andClause(where string) string {
	if where == "" {
		return ""
	}
	return " AND " + where
}

/*
FindByID returns the song with the given ID, hydrated with its artists and
album, or ErrNotFound if missing or soft-deleted.
*/
func (repository *songRepository) FindByID(context context.Context, id string) (*Song, error) {
	return repository.findBy(context, schema.CatalogSong.ID, id, "song")
}

/*
FindBySlug returns the song matching the unique URL identifier.
*/
func (repository *songRepository) FindBySlug(context context.Context, slug string) (*Song, error) {
	return repository.findBy(context, schema.CatalogSong.Slug, slug, "song_slug")
}

/*
FindBySpotifyID returns the song imported from the given upstream track.
*/
func (repository *songRepository) FindBySpotifyID(context context.Context, spotifyID string) (*Song, error) {
	return repository.findBy(context, schema.CatalogSong.SpotifyID, spotifyID, "song")
}

// findBy is the shared single-row lookup behind FindByID, FindBySlug and
// FindBySpotifyID.
func (repository *songRepository) findBy(context context.Context, column, value, resource string) (*Song, error) {
	query := fmt.Sprintf("SELECT %s, %s %s WHERE s.%s = $1 AND s.%s IS NULL",
		songColumns, artistsSubquery, fromClause, column, schema.CatalogSong.DeletedAt)

	song := &Song{}
	var album albumScan
	var artistsJSON []byte

	err := repository.pool.QueryRow(context, query, value).Scan(scanTargets(song, &album, &artistsJSON)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(resource)
		}
		return nil, fmt.Errorf("postgres: failed to find song by %s: %w", column, err)
	}

	if err := hydrate(song, album, artistsJSON); err != nil {
		return nil, err
	}

	return song, nil
}

/*
Create persists a new song and its artist junction rows in one
transaction, so a constraint failure on either side leaves nothing behind.
*/
func (repository *songRepository) Create(context context.Context, song *Song) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s,
			%s, %s,
			%s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s,
			%s, %s, %s, %s
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7,
			$8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24,
			$25, $26, $27, $28
		)
	`,
		schema.CatalogSong.Table,
		schema.CatalogSong.ID, schema.CatalogSong.Title, schema.CatalogSong.Slug, schema.CatalogSong.SpotifyID, schema.CatalogSong.AlbumID,
		schema.CatalogSong.Genre, schema.CatalogSong.ParentGenre,
		schema.CatalogSong.VeganFocus, schema.CatalogSong.AnimalCategory, schema.CatalogSong.AdvocacyStyle, schema.CatalogSong.AdvocacyIssues, schema.CatalogSong.LyricalExplicitness,
		schema.CatalogSong.Energy, schema.CatalogSong.Danceability, schema.CatalogSong.Valence, schema.CatalogSong.Acousticness, schema.CatalogSong.Instrumentalness, schema.CatalogSong.Liveness, schema.CatalogSong.Speechiness, schema.CatalogSong.Tempo, schema.CatalogSong.Loudness, schema.CatalogSong.Key, schema.CatalogSong.Mode, schema.CatalogSong.TimeSignature,
		schema.CatalogSong.Popularity, schema.CatalogSong.Review, schema.CatalogSong.YouTubeID, schema.CatalogSong.Featured,
	)

	_, err = transaction.Exec(context, query,
		song.ID, song.Title, song.Slug, song.SpotifyID, song.AlbumID,
		song.Genre, song.ParentGenre,
		song.VeganFocus, song.AnimalCategory, song.AdvocacyStyle, song.AdvocacyIssues, song.LyricalExplicitness,
		song.Energy, song.Danceability, song.Valence, song.Acousticness, song.Instrumentalness, song.Liveness, song.Speechiness, song.Tempo, song.Loudness, song.Key, song.Mode, song.TimeSignature,
		song.Popularity, song.Review, song.YouTubeID, song.Featured,
	)
	if err != nil {
		return dberr.Wrap(err, "create song")
	}

	if len(song.ArtistIDs) > 0 {
		if err := replaceArtists(context, transaction, song.ID, song.ArtistIDs); err != nil {
			return err
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit create transaction: %w", err)
	}

	return nil
}

/*
Update rewrites a song's mutable columns and, when ArtistIDs is non-nil,
replaces the artist junction rows in the same transaction. The service
layer merges partial input onto the stored entity first, so writing every
column here is safe.
*/
func (repository *songRepository) Update(context context.Context, song *Song) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $1, %s = $2, %s = $3, %s = $4,
			%s = $5, %s = $6,
			%s = $7, %s = $8, %s = $9, %s = $10, %s = $11,
			%s = $12, %s = $13, %s = $14, %s = $15, %s = $16, %s = $17, %s = $18, %s = $19, %s = $20, %s = $21, %s = $22, %s = $23,
			%s = $24, %s = $25, %s = $26, %s = $27,
			%s = NOW()
		WHERE %s = $28 AND %s IS NULL
	`,
		schema.CatalogSong.Table,
		schema.CatalogSong.Title, schema.CatalogSong.Slug, schema.CatalogSong.SpotifyID, schema.CatalogSong.AlbumID,
		schema.CatalogSong.Genre, schema.CatalogSong.ParentGenre,
		schema.CatalogSong.VeganFocus, schema.CatalogSong.AnimalCategory, schema.CatalogSong.AdvocacyStyle, schema.CatalogSong.AdvocacyIssues, schema.CatalogSong.LyricalExplicitness,
		schema.CatalogSong.Energy, schema.CatalogSong.Danceability, schema.CatalogSong.Valence, schema.CatalogSong.Acousticness, schema.CatalogSong.Instrumentalness, schema.CatalogSong.Liveness, schema.CatalogSong.Speechiness, schema.CatalogSong.Tempo, schema.CatalogSong.Loudness, schema.CatalogSong.Key, schema.CatalogSong.Mode, schema.CatalogSong.TimeSignature,
		schema.CatalogSong.Popularity, schema.CatalogSong.Review, schema.CatalogSong.YouTubeID, schema.CatalogSong.Featured,
		schema.CatalogSong.UpdatedAt,
		schema.CatalogSong.ID, schema.CatalogSong.DeletedAt,
	)

	result, err := transaction.Exec(context, query,
		song.Title, song.Slug, song.SpotifyID, song.AlbumID,
		song.Genre, song.ParentGenre,
		song.VeganFocus, song.AnimalCategory, song.AdvocacyStyle, song.AdvocacyIssues, song.LyricalExplicitness,
		song.Energy, song.Danceability, song.Valence, song.Acousticness, song.Instrumentalness, song.Liveness, song.Speechiness, song.Tempo, song.Loudness, song.Key, song.Mode, song.TimeSignature,
		song.Popularity, song.Review, song.YouTubeID, song.Featured,
		song.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update song")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("song")
	}

	if song.ArtistIDs != nil {
		if err := replaceArtists(context, transaction, song.ID, song.ArtistIDs); err != nil {
			return err
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit update transaction: %w", err)
	}

	return nil
}

// replaceArtists resynchronizes the song↔artist junction inside an open
// transaction, preserving the given credit order via the position column.
func replaceArtists(context context.Context, transaction pgx.Tx, songID string, artistIDs []string) error {
	delQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CatalogSongArtist.Table, schema.CatalogSongArtist.SongID)
	if _, err := transaction.Exec(context, delQuery, songID); err != nil {
		return fmt.Errorf("postgres: failed to clear song artists: %w", err)
	}

	if len(artistIDs) == 0 {
		return nil
	}

	insQuery := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
		schema.CatalogSongArtist.Table,
		schema.CatalogSongArtist.SongID, schema.CatalogSongArtist.ArtistID, schema.CatalogSongArtist.Position)

	batch := &pgx.Batch{}
	for position, artistID := range artistIDs {
		batch.Queue(insQuery, songID, artistID, position)
	}

	response := transaction.SendBatch(context, batch)
	if err := response.Close(); err != nil {
		return fmt.Errorf("postgres: failed to batch insert song artists: %w", err)
	}

	return nil
}

/*
SoftDelete hides a song by stamping deletedat; every read path carries a
WHERE deletedat IS NULL guard, so the row drops out of discovery while the
history stays intact.
*/
func (repository *songRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL",
		schema.CatalogSong.Table, schema.CatalogSong.DeletedAt,
		schema.CatalogSong.ID, schema.CatalogSong.DeletedAt)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete song: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("song")
	}

	return nil
}

/*
FacetValues collects the distinct stored tags per facet and the album
release-year span in one round trip per facet. The result feeds the
filter-options endpoint and is cached upstream.
*/
func (repository *songRepository) FacetValues(context context.Context) (*FilterOptions, error) {
	options := &FilterOptions{}

	targets := []struct {
		column string
		dest   *[]string
	}{
		{schema.CatalogSong.VeganFocus, &options.VeganFocus},
		{schema.CatalogSong.AnimalCategory, &options.AnimalCategory},
		{schema.CatalogSong.AdvocacyStyle, &options.AdvocacyStyle},
		{schema.CatalogSong.AdvocacyIssues, &options.AdvocacyIssues},
		{schema.CatalogSong.LyricalExplicitness, &options.LyricalExplicitness},
	}

	for _, target := range targets {
		query := fmt.Sprintf("SELECT ARRAY(SELECT DISTINCT unnest(s.%s) FROM %s s WHERE s.%s IS NULL ORDER BY 1)",
			target.column, schema.CatalogSong.Table, schema.CatalogSong.DeletedAt)

		if err := repository.pool.QueryRow(context, query).Scan(target.dest); err != nil {
			return nil, fmt.Errorf("postgres: failed to collect %s values: %w", target.column, err)
		}
	}

	yearQuery := fmt.Sprintf(`
		SELECT MIN(EXTRACT(YEAR FROM al.%s))::int, MAX(EXTRACT(YEAR FROM al.%s))::int
		FROM %s al WHERE al.%s IS NULL
	`, schema.CatalogAlbum.ReleaseDate, schema.CatalogAlbum.ReleaseDate,
		schema.CatalogAlbum.Table, schema.CatalogAlbum.DeletedAt)

	if err := repository.pool.QueryRow(context, yearQuery).Scan(&options.YearMin, &options.YearMax); err != nil {
		return nil, fmt.Errorf("postgres: failed to collect year span: %w", err)
	}

	return options, nil
}

/*
ListForBackfill returns every song eligible for reclassification together
with its artists' live raw tags, concatenated in artist position order
with each artist's own tag order preserved.
*/
func (repository *songRepository) ListForBackfill(context context.Context, onlyMissing bool) ([]BackfillRow, error) {
	missing := ""
	if onlyMissing {
		missing = fmt.Sprintf(" AND s.%s IS NULL", schema.CatalogSong.Genre)
	}

	query := fmt.Sprintf(`
		SELECT s.%s, COALESCE((
			SELECT array_agg(g.tag ORDER BY sa.%s, g.ord)
			FROM %s sa
			JOIN %s a ON a.%s = sa.%s
			CROSS JOIN LATERAL unnest(a.%s) WITH ORDINALITY AS g(tag, ord)
			WHERE sa.%s = s.%s
		), '{}')
		FROM %s s
		WHERE s.%s IS NULL%s
		ORDER BY s.%s
	`,
		schema.CatalogSong.ID,
		schema.CatalogSongArtist.Position,
		schema.CatalogSongArtist.Table,
		schema.CatalogArtist.Table, schema.CatalogArtist.ID, schema.CatalogSongArtist.ArtistID,
		schema.CatalogArtist.Genres,
		schema.CatalogSongArtist.SongID, schema.CatalogSong.ID,
		schema.CatalogSong.Table,
		schema.CatalogSong.DeletedAt, missing,
		schema.CatalogSong.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list backfill rows: %w", err)
	}
	defer rows.Close()

	var backfill []BackfillRow
	for rows.Next() {
		var row BackfillRow
		if err := rows.Scan(&row.ID, &row.ArtistGenres); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan backfill row: %w", err)
		}
		backfill = append(backfill, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read backfill rows: %w", err)
	}

	return backfill, nil
}

/*
UpdateClassification rewrites one song's cached (genre, parent genre)
pair. Running the backfill twice writes the same values twice; the
operation is idempotent by construction.
*/
func (repository *songRepository) UpdateClassification(context context.Context, id string, cls genre.Classification) error {
	query := fmt.Sprintf("UPDATE %s SET %s = $1, %s = $2, %s = NOW() WHERE %s = $3 AND %s IS NULL",
		schema.CatalogSong.Table,
		schema.CatalogSong.Genre, schema.CatalogSong.ParentGenre, schema.CatalogSong.UpdatedAt,
		schema.CatalogSong.ID, schema.CatalogSong.DeletedAt)

	result, err := repository.pool.Exec(context, query, cls.Genre, cls.ParentGenre, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to update classification: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("song")
	}

	return nil
}
