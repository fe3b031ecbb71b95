// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package song

import (
	"fmt"
	"strings"

	"github.com/theveganplaylist/server/internal/genre"
	"github.com/theveganplaylist/server/internal/platform/database/schema"
	"github.com/theveganplaylist/server/pkg/pagination"
)

// # Query Planning

/*
The planner converts a [FilterSpec] into two plans that share the exact
same predicate list:

  - [QueryPlan]: predicates + ordering + limit/offset, for fetching one
    result page.
  - [CountPlan]: the same predicates with a distinct-song count
    aggregation, for pagination metadata. Joins to the many-valued artist
    relation can multiply rows, so the count must be over distinct song
    identities, never raw joined rows.

Predicates are accumulated as immutable (fragment, args) pairs. Fragments
embed the neutral [Placeholder] marker instead of positional $n
placeholders; numbering happens in a single final rendering pass, so no
mutable parameter counter threads through the construction logic.

Every filter contributes zero or one predicate, and absent filters
contribute nothing. That is what makes the empty FilterSpec match the
whole catalogue.
*/

// Placeholder is the neutral parameter marker embedded in predicate
// fragments. [Render] replaces each occurrence with the next positional
// placeholder.
const Placeholder = "?"

// Predicate is one immutable filter fragment plus the values bound to its
// placeholders, in order.
type Predicate struct {
	Fragment string
	Args     []any
}

// QueryPlan describes one page-fetching query: the conjunction of
// predicates, the ordering, and the window.
type QueryPlan struct {
	Predicates []Predicate
	OrderBy    string // rendered ORDER BY expression, never empty
	Limit      int
	Offset     int
}

// CountPlan describes the matching total-count query. It shares the
// QueryPlan's predicates verbatim so pagination metadata can never drift
// from the rows being paged.
type CountPlan struct {
	Predicates []Predicate
}

// Planner builds query plans for song searches. It holds the genre
// hierarchy used to expand parent-genre selections and is safe for
// concurrent use.
type Planner struct {
	hierarchy *genre.Hierarchy
}

// NewPlanner returns a Planner backed by the given hierarchy.
func NewPlanner(h *genre.Hierarchy) *Planner {
	return &Planner{hierarchy: h}
}

// Plans builds the page plan and the count plan for one FilterSpec. The
// same FilterSpec always yields the same plans.
func (p *Planner) Plans(f FilterSpec) (QueryPlan, CountPlan) {
	predicates := p.predicates(f)

	window := pagination.Clamp(f.Page, f.Limit)
	plan := QueryPlan{
		Predicates: predicates,
		OrderBy:    f.Sort.orderBy(),
		Limit:      window.Limit,
		Offset:     window.Offset(),
	}

	return plan, CountPlan{Predicates: predicates}
}

// predicates assembles the shared filter conjunction in a fixed order:
// free text, artist scope, facets, subgenres, parent genres, audio
// features, year.
func (p *Planner) predicates(f FilterSpec) []Predicate {
	var predicates []Predicate

	if pred, ok := textPredicate(f.Query); ok {
		predicates = append(predicates, pred)
	}

	if f.ArtistID != "" {
		predicates = append(predicates, artistScopePredicate(f.ArtistID))
	}

	for _, facet := range Facets {
		if pred, ok := facetPredicate(facet, f.Facet(facet)); ok {
			predicates = append(predicates, pred)
		}
	}

	if len(f.Genres) > 0 {
		predicates = append(predicates, artistGenrePredicate(f.Genres))
	}

	if len(f.ParentGenres) > 0 {
		// An unrecognized parent expands to nothing; the predicate is
		// still emitted, so it matches no songs rather than silently
		// matching all of them.
		predicates = append(predicates, artistGenrePredicate(p.hierarchy.Expand(f.ParentGenres)))
	}

	for _, feature := range audioFeatures(f) {
		if pred, ok := rangePredicate(feature.column, feature.bounds); ok {
			predicates = append(predicates, pred)
		}
	}

	if pred, ok := yearPredicate(f.Year); ok {
		predicates = append(predicates, pred)
	}

	return predicates
}

// textPredicate matches the query as a case-insensitive substring of the
// title, any associated artist name, the album title, or the review.
//
// The user's literal '%' and '_' characters are passed through to ILIKE
// unescaped, so they act as wildcards. This mirrors longstanding observed
// behavior that callers may depend on; see DESIGN.md before changing it.
func textPredicate(query string) (Predicate, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Predicate{}, false
	}

	pattern := "%" + query + "%"
	fragment := fmt.Sprintf(`(s.%s ILIKE %s OR s.%s ILIKE %s OR EXISTS (
		SELECT 1 FROM %s sa
		JOIN %s a ON a.%s = sa.%s
		WHERE sa.%s = s.%s AND a.%s ILIKE %s
	) OR EXISTS (
		SELECT 1 FROM %s al
		WHERE al.%s = s.%s AND al.%s ILIKE %s
	))`,
		schema.CatalogSong.Title, Placeholder,
		schema.CatalogSong.Review, Placeholder,
		schema.CatalogSongArtist.Table,
		schema.CatalogArtist.Table, schema.CatalogArtist.ID, schema.CatalogSongArtist.ArtistID,
		schema.CatalogSongArtist.SongID, schema.CatalogSong.ID, schema.CatalogArtist.Name, Placeholder,
		schema.CatalogAlbum.Table,
		schema.CatalogAlbum.ID, schema.CatalogSong.AlbumID, schema.CatalogAlbum.Title, Placeholder,
	)

	return Predicate{
		Fragment: fragment,
		Args:     []any{pattern, pattern, pattern, pattern},
	}, true
}

// artistScopePredicate restricts results to songs credited to one artist.
func artistScopePredicate(artistID string) Predicate {
	fragment := fmt.Sprintf("EXISTS (SELECT 1 FROM %s sa WHERE sa.%s = s.%s AND sa.%s = %s)",
		schema.CatalogSongArtist.Table,
		schema.CatalogSongArtist.SongID, schema.CatalogSong.ID,
		schema.CatalogSongArtist.ArtistID, Placeholder,
	)

	return Predicate{Fragment: fragment, Args: []any{artistID}}
}

// facetPredicate matches songs whose stored facet set overlaps the
// selected values (non-empty intersection, not subset).
func facetPredicate(facet string, selected []string) (Predicate, bool) {
	column := schema.CatalogSong.FacetColumn(facet)
	if column == "" || len(selected) == 0 {
		return Predicate{}, false
	}

	return Predicate{
		Fragment: fmt.Sprintf("s.%s && %s", column, Placeholder),
		Args:     []any{selected},
	}, true
}

// artistGenrePredicate matches songs having at least one artist whose live
// raw genre tags overlap the given subgenre set. This deliberately checks
// the upstream tags rather than the cached per-song classification; the
// two can disagree when an artist's tags change after import.
func artistGenrePredicate(subgenres []string) Predicate {
	fragment := fmt.Sprintf(`EXISTS (
		SELECT 1 FROM %s sa
		JOIN %s a ON a.%s = sa.%s
		WHERE sa.%s = s.%s AND a.%s && %s
	)`,
		schema.CatalogSongArtist.Table,
		schema.CatalogArtist.Table, schema.CatalogArtist.ID, schema.CatalogSongArtist.ArtistID,
		schema.CatalogSongArtist.SongID, schema.CatalogSong.ID,
		schema.CatalogArtist.Genres, Placeholder,
	)

	return Predicate{Fragment: fragment, Args: []any{subgenres}}
}

// rangePredicate constrains one numeric column; each bound is independent.
func rangePredicate(column string, bounds Range) (Predicate, bool) {
	if bounds.IsZero() {
		return Predicate{}, false
	}

	var parts []string
	var args []any
	if bounds.Min != nil {
		parts = append(parts, fmt.Sprintf("s.%s >= %s", column, Placeholder))
		args = append(args, *bounds.Min)
	}
	if bounds.Max != nil {
		parts = append(parts, fmt.Sprintf("s.%s <= %s", column, Placeholder))
		args = append(args, *bounds.Max)
	}

	return Predicate{
		Fragment: strings.Join(parts, " AND "),
		Args:     args,
	}, true
}

// yearPredicate constrains the release year of the song's album.
func yearPredicate(year YearRange) (Predicate, bool) {
	if year.IsZero() {
		return Predicate{}, false
	}

	var parts []string
	var args []any
	if year.From != nil {
		parts = append(parts, fmt.Sprintf("EXTRACT(YEAR FROM al.%s) >= %s", schema.CatalogAlbum.ReleaseDate, Placeholder))
		args = append(args, *year.From)
	}
	if year.To != nil {
		parts = append(parts, fmt.Sprintf("EXTRACT(YEAR FROM al.%s) <= %s", schema.CatalogAlbum.ReleaseDate, Placeholder))
		args = append(args, *year.To)
	}

	fragment := fmt.Sprintf("EXISTS (SELECT 1 FROM %s al WHERE al.%s = s.%s AND %s)",
		schema.CatalogAlbum.Table, schema.CatalogAlbum.ID, schema.CatalogSong.AlbumID,
		strings.Join(parts, " AND "))

	return Predicate{Fragment: fragment, Args: args}, true
}

// featureFilter pairs an audio-feature column with its requested bounds.
type featureFilter struct {
	column string
	bounds Range
}

// audioFeatures lists the numeric filters in their fixed construction
// order.
func audioFeatures(f FilterSpec) []featureFilter {
	return []featureFilter{
		{schema.CatalogSong.Energy, f.Energy},
		{schema.CatalogSong.Danceability, f.Danceability},
		{schema.CatalogSong.Valence, f.Valence},
		{schema.CatalogSong.Acousticness, f.Acousticness},
		{schema.CatalogSong.Instrumentalness, f.Instrumentalness},
		{schema.CatalogSong.Liveness, f.Liveness},
		{schema.CatalogSong.Speechiness, f.Speechiness},
		{schema.CatalogSong.Tempo, f.Tempo},
		{schema.CatalogSong.Loudness, f.Loudness},
	}
}

// # Rendering

// Render joins predicates into a conjunction and replaces every
// [Placeholder] with sequential positional placeholders starting at
// start. It returns the rendered clause (empty when there are no
// predicates), the bound arguments in placeholder order, and the next
// unused placeholder index.
//
// Rendering is the only place placeholder numbers exist; the construction
// code above never sees them.
func Render(predicates []Predicate, start int) (string, []any, int) {
	if len(predicates) == 0 {
		return "", nil, start
	}

	var clause strings.Builder
	var args []any
	next := start

	for i, pred := range predicates {
		if i > 0 {
			clause.WriteString(" AND ")
		}

		fragment := pred.Fragment
		for _, arg := range pred.Args {
			marker := fmt.Sprintf("$%d", next)
			fragment = strings.Replace(fragment, Placeholder, marker, 1)
			args = append(args, arg)
			next++
		}
		clause.WriteString(fragment)
	}

	return clause.String(), args, next
}

// orderBy maps the sort enum onto a rendered ORDER BY expression. Nullable
// sort columns order nulls last in either direction, and every ordering
// carries a deterministic tie-break.
func (s Sort) orderBy() string {
	title := fmt.Sprintf("s.%s ASC", schema.CatalogSong.Title)

	switch s {
	case SortTitle:
		return title
	case SortYear:
		return fmt.Sprintf("al.%s DESC NULLS LAST, %s", schema.CatalogAlbum.ReleaseDate, title)
	case SortArtist:
		return fmt.Sprintf(`(
			SELECT MIN(a.%s) FROM %s sa
			JOIN %s a ON a.%s = sa.%s
			WHERE sa.%s = s.%s
		) ASC NULLS LAST, %s`,
			schema.CatalogArtist.Name, schema.CatalogSongArtist.Table,
			schema.CatalogArtist.Table, schema.CatalogArtist.ID, schema.CatalogSongArtist.ArtistID,
			schema.CatalogSongArtist.SongID, schema.CatalogSong.ID, title)
	case SortEnergy:
		return fmt.Sprintf("s.%s DESC NULLS LAST, %s", schema.CatalogSong.Energy, title)
	case SortDanceability:
		return fmt.Sprintf("s.%s DESC NULLS LAST, %s", schema.CatalogSong.Danceability, title)
	case SortValence:
		return fmt.Sprintf("s.%s DESC NULLS LAST, %s", schema.CatalogSong.Valence, title)
	}

	return fmt.Sprintf("s.%s DESC, %s", schema.CatalogSong.Popularity, title)
}
