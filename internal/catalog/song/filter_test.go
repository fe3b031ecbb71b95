// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package song_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theveganplaylist/server/internal/catalog/song"
	"github.com/theveganplaylist/server/internal/genre"
)

/*
TestFilterFromQuery_Normalization covers the decode boundary: repeated and
comma-separated parameter forms collapse to one slice, genre names are
lowercased, and everything comes back sorted and deduplicated.
*/
func TestFilterFromQuery_Normalization(t *testing.T) {
	values := url.Values{
		"q":             {"  go vegan  "},
		"genres":        {"Grime,death metal", "grime"},
		"parent_genres": {"METAL"},
		"vegan_focus":   {"explicit", "implied,explicit"},
		"sort_by":       {"title"},
		"page":          {"2"},
		"limit":         {"50"},
	}

	f := song.FilterFromQuery(values)

	assert.Equal(t, "go vegan", f.Query)
	assert.Equal(t, []string{"death metal", "grime"}, f.Genres)
	assert.Equal(t, []string{"metal"}, f.ParentGenres)
	assert.Equal(t, []string{"explicit", "implied"}, f.VeganFocus)
	assert.Equal(t, song.SortTitle, f.Sort)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 50, f.Limit)
}

/*
TestFilterFromQuery_MalformedNumerics pins the recovery rule: a numeric
parameter that fails to parse is treated as absent, never as an error.
*/
func TestFilterFromQuery_MalformedNumerics(t *testing.T) {
	values := url.Values{
		"energy_min":   {"not-a-number"},
		"energy_max":   {"0.8"},
		"tempo_min":    {""},
		"loudness_min": {"-12.5"},
		"loudness_max": {"minus three"},
		"year_from":    {"199x"},
		"year_to":      {"2020"},
		"page":         {"first"},
	}

	f := song.FilterFromQuery(values)

	assert.Nil(t, f.Energy.Min)
	require.NotNil(t, f.Energy.Max)
	assert.Equal(t, 0.8, *f.Energy.Max)
	assert.True(t, f.Tempo.IsZero())
	require.NotNil(t, f.Loudness.Min)
	assert.Equal(t, -12.5, *f.Loudness.Min)
	assert.Nil(t, f.Loudness.Max)
	assert.Nil(t, f.Year.From)
	require.NotNil(t, f.Year.To)
	assert.Equal(t, 2020, *f.Year.To)
	assert.Equal(t, 0, f.Page)
}

/*
TestFilterFromQuery_Empty checks that a bare request decodes to a
FilterSpec that builds an unfiltered plan.
*/
func TestFilterFromQuery_Empty(t *testing.T) {
	f := song.FilterFromQuery(url.Values{})

	plan, count := song.NewPlanner(genre.Default()).Plans(f)
	assert.Empty(t, plan.Predicates)
	assert.Empty(t, count.Predicates)
	assert.Equal(t, song.SortPopularity, f.Sort)
}

/*
TestFilterSpec_Echo verifies the response echo: empty filters come back
null/empty, applied ones come back normalized, and a parent whose members
are all selected shows as selected for the client's checkbox tree.
*/
func TestFilterSpec_Echo(t *testing.T) {
	h := genre.Default()

	empty := song.FilterSpec{}.Echo(h)
	assert.Empty(t, empty.Query)
	assert.Nil(t, empty.Genres)
	assert.Nil(t, empty.ParentGenres)
	assert.Nil(t, empty.VeganFocus)
	assert.True(t, empty.Energy.IsZero())
	assert.True(t, empty.Year.IsZero())

	full := song.FilterSpec{
		Genres:       append(h.Subgenres("ska"), "grime"),
		ParentGenres: []string{"punk"},
	}.Echo(h)

	assert.Contains(t, full.ParentGenres, "punk")
	assert.Contains(t, full.ParentGenres, "ska", "fully-covered parent derives as selected")
	assert.NotContains(t, full.ParentGenres, "hip-hop")
	assert.Contains(t, full.Genres, "grime")
}
