// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package song

import (
	"net/url"
	"sort"
	"strings"

	"github.com/theveganplaylist/server/internal/genre"
	"github.com/theveganplaylist/server/pkg/query"
)

// # Filter Decoding

/*
FilterFromQuery decodes the search parameters of one request into a
normalized [FilterSpec].

Multi-valued parameters accept both the repeated-key and comma-separated
forms. Genre names are lowercased and sorted; facet values keep their
stored casing but are trimmed, sorted, and deduplicated. Malformed numeric
bounds are treated as absent, and an unknown sort key falls back to the
default ordering. Decoding never fails: whatever arrives, the result is a
valid FilterSpec.

Recognized parameters:

	q                    free-text search
	vegan_focus, animal_category, advocacy_style,
	advocacy_issues, lyrical_explicitness
	genres, parent_genres
	<feature>_min, <feature>_max   (energy, danceability, valence,
	                                acousticness, instrumentalness,
	                                liveness, speechiness, tempo,
	                                loudness)
	year_from, year_to
	sort_by, page, limit
*/
func FilterFromQuery(values url.Values) FilterSpec {
	rangeOf := func(feature string) Range {
		return Range{
			Min: query.FloatPtr(values.Get(feature + "_min")),
			Max: query.FloatPtr(values.Get(feature + "_max")),
		}
	}

	f := FilterSpec{
		Query: strings.TrimSpace(values.Get("q")),

		VeganFocus:          normalizeFacetValues(values["vegan_focus"]),
		AnimalCategory:      normalizeFacetValues(values["animal_category"]),
		AdvocacyStyle:       normalizeFacetValues(values["advocacy_style"]),
		AdvocacyIssues:      normalizeFacetValues(values["advocacy_issues"]),
		LyricalExplicitness: normalizeFacetValues(values["lyrical_explicitness"]),

		Genres:       normalizeGenreValues(values["genres"]),
		ParentGenres: normalizeGenreValues(values["parent_genres"]),

		Energy:           rangeOf("energy"),
		Danceability:     rangeOf("danceability"),
		Valence:          rangeOf("valence"),
		Acousticness:     rangeOf("acousticness"),
		Instrumentalness: rangeOf("instrumentalness"),
		Liveness:         rangeOf("liveness"),
		Speechiness:      rangeOf("speechiness"),
		Tempo:            rangeOf("tempo"),
		Loudness:         rangeOf("loudness"),

		Year: YearRange{
			From: query.IntPtr(values.Get("year_from")),
			To:   query.IntPtr(values.Get("year_to")),
		},

		Sort: ParseSort(values.Get("sort_by")),
	}

	if p := query.IntPtr(values.Get("page")); p != nil {
		f.Page = *p
	}
	if l := query.IntPtr(values.Get("limit")); l != nil {
		f.Limit = *l
	}

	return f
}

// normalizeFacetValues trims, deduplicates, and sorts facet selections.
// Casing is preserved: facet tags are matched as stored.
func normalizeFacetValues(raw []string) []string {
	return dedupeSorted(query.Strings(raw))
}

// normalizeGenreValues additionally lowercases, since the taxonomy is all
// lowercase.
func normalizeGenreValues(raw []string) []string {
	vals := query.Strings(raw)
	for i, v := range vals {
		vals[i] = strings.ToLower(v)
	}
	return dedupeSorted(vals)
}

func dedupeSorted(vals []string) []string {
	if len(vals) == 0 {
		return nil
	}

	sort.Strings(vals)
	out := vals[:1]
	for _, v := range vals[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// # Filter Echo

// Echo is the normalized view of the effectively-applied filters, included
// verbatim in search responses so the client can restore its filter UI
// state. Fields are always present; an unused filter shows as null.
type Echo struct {
	Query string `json:"q"`

	VeganFocus          []string `json:"vegan_focus"`
	AnimalCategory      []string `json:"animal_category"`
	AdvocacyStyle       []string `json:"advocacy_style"`
	AdvocacyIssues      []string `json:"advocacy_issues"`
	LyricalExplicitness []string `json:"lyrical_explicitness"`

	// Genres is the applied subgenre selection. ParentGenres holds the
	// explicitly selected parents plus any parent whose every member
	// appears in Genres, so the client's hierarchical checkboxes come back
	// in a consistent state.
	Genres       []string `json:"genres"`
	ParentGenres []string `json:"parent_genres"`

	Energy           Range `json:"energy"`
	Danceability     Range `json:"danceability"`
	Valence          Range `json:"valence"`
	Acousticness     Range `json:"acousticness"`
	Instrumentalness Range `json:"instrumentalness"`
	Liveness         Range `json:"liveness"`
	Speechiness      Range `json:"speechiness"`
	Tempo            Range `json:"tempo"`
	Loudness         Range `json:"loudness"`

	Year YearRange `json:"year"`

	Sort Sort `json:"sort_by"`
}

// Echo derives the response echo for a decoded FilterSpec.
func (f FilterSpec) Echo(h *genre.Hierarchy) Echo {
	sel := genre.NewSelection(h)
	sel.SetSubgenres(f.Genres)

	parents := f.ParentGenres
	if derived := sel.Parents(); len(derived) > 0 {
		parents = dedupeSorted(append(append([]string(nil), parents...), derived...))
	}

	return Echo{
		Query:               f.Query,
		VeganFocus:          f.VeganFocus,
		AnimalCategory:      f.AnimalCategory,
		AdvocacyStyle:       f.AdvocacyStyle,
		AdvocacyIssues:      f.AdvocacyIssues,
		LyricalExplicitness: f.LyricalExplicitness,
		Genres:              f.Genres,
		ParentGenres:        parents,
		Energy:              f.Energy,
		Danceability:        f.Danceability,
		Valence:             f.Valence,
		Acousticness:        f.Acousticness,
		Instrumentalness:    f.Instrumentalness,
		Liveness:            f.Liveness,
		Speechiness:         f.Speechiness,
		Tempo:               f.Tempo,
		Loudness:            f.Loudness,
		Year:                f.Year,
		Sort:                f.Sort,
	}
}
