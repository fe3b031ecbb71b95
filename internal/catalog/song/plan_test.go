// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package song_test

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theveganplaylist/server/internal/catalog/song"
	"github.com/theveganplaylist/server/internal/genre"
	"github.com/theveganplaylist/server/pkg/pagination"
	"github.com/theveganplaylist/server/pkg/pointer"
)

func newPlanner() *song.Planner {
	return song.NewPlanner(genre.Default())
}

/*
TestPlanner_EmptyFilter pins the core invariant: a FilterSpec with nothing
set contributes zero predicates, so the query matches the whole catalogue,
with the default ordering and window.
*/
func TestPlanner_EmptyFilter(t *testing.T) {
	plan, count := newPlanner().Plans(song.FilterSpec{})

	assert.Empty(t, plan.Predicates)
	assert.Empty(t, count.Predicates)
	assert.Equal(t, pagination.DefaultLimit, plan.Limit)
	assert.Equal(t, 0, plan.Offset)
	assert.Contains(t, plan.OrderBy, "popularity DESC")
	assert.Contains(t, plan.OrderBy, "title ASC")

	clause, args, next := song.Render(plan.Predicates, 1)
	assert.Empty(t, clause)
	assert.Empty(t, args)
	assert.Equal(t, 1, next)
}

/*
TestPlanner_Deterministic verifies that the same FilterSpec always builds
an identical plan and that the count plan shares the page plan's
predicates verbatim.
*/
func TestPlanner_Deterministic(t *testing.T) {
	planner := newPlanner()
	filter := song.FilterSpec{
		Query:        "liberation",
		VeganFocus:   []string{"explicit", "implied"},
		Genres:       []string{"death metal", "grime"},
		ParentGenres: []string{"punk"},
		Energy:       song.Range{Min: pointer.To(0.5)},
		Year:         song.YearRange{From: pointer.To(1990), To: pointer.To(1999)},
		Sort:         song.SortEnergy,
		Page:         3,
		Limit:        10,
	}

	planA, countA := planner.Plans(filter)
	planB, countB := planner.Plans(filter)

	assert.True(t, reflect.DeepEqual(planA, planB))
	assert.True(t, reflect.DeepEqual(countA, countB))
	assert.True(t, reflect.DeepEqual(planA.Predicates, countA.Predicates),
		"count plan must share the page plan's predicates")
}

/*
TestPlanner_Predicates spot-checks each filter's contribution: one
predicate per supplied filter, none for absent ones.
*/
func TestPlanner_Predicates(t *testing.T) {
	planner := newPlanner()

	tests := []struct {
		name      string
		filter    song.FilterSpec
		wantCount int
		wantFrag  string
		wantArg   any
	}{
		{
			name:      "free_text",
			filter:    song.FilterSpec{Query: "dairy"},
			wantCount: 1,
			wantFrag:  "ILIKE",
			wantArg:   "%dairy%",
		},
		{
			name:      "single_facet",
			filter:    song.FilterSpec{AnimalCategory: []string{"pigs", "cows"}},
			wantCount: 1,
			wantFrag:  "animalcategory &&",
			wantArg:   []string{"pigs", "cows"},
		},
		{
			name:      "subgenres",
			filter:    song.FilterSpec{Genres: []string{"grime"}},
			wantCount: 1,
			wantFrag:  "genres &&",
			wantArg:   []string{"grime"},
		},
		{
			name:      "range_min_only",
			filter:    song.FilterSpec{Danceability: song.Range{Min: pointer.To(0.7)}},
			wantCount: 1,
			wantFrag:  "danceability >=",
			wantArg:   0.7,
		},
		{
			name:      "range_max_only",
			filter:    song.FilterSpec{Tempo: song.Range{Max: pointer.To(120.0)}},
			wantCount: 1,
			wantFrag:  "tempo <=",
			wantArg:   120.0,
		},
		{
			name:      "loudness_max_only",
			filter:    song.FilterSpec{Loudness: song.Range{Max: pointer.To(-5.0)}},
			wantCount: 1,
			wantFrag:  "loudness <=",
			wantArg:   -5.0,
		},
		{
			name:      "year_from_only",
			filter:    song.FilterSpec{Year: song.YearRange{From: pointer.To(2005)}},
			wantCount: 1,
			wantFrag:  "EXTRACT(YEAR FROM",
			wantArg:   2005,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, _ := planner.Plans(tt.filter)
			require.Len(t, plan.Predicates, tt.wantCount)

			pred := plan.Predicates[0]
			assert.Contains(t, pred.Fragment, tt.wantFrag)
			require.NotEmpty(t, pred.Args)
			assert.Equal(t, tt.wantArg, pred.Args[0])
		})
	}
}

/*
TestPlanner_TextWildcardPassThrough pins the open quirk: a user-supplied
'%' or '_' reaches ILIKE unescaped and acts as a wildcard.
*/
func TestPlanner_TextWildcardPassThrough(t *testing.T) {
	plan, _ := newPlanner().Plans(song.FilterSpec{Query: "100% veg_n"})

	require.Len(t, plan.Predicates, 1)
	for _, arg := range plan.Predicates[0].Args {
		assert.Equal(t, "%100% veg_n%", arg)
	}
}

/*
TestPlanner_ParentExpansion verifies that a parent-genre selection expands
into the full member set, and that an unknown parent still emits a
predicate that can match nothing.
*/
func TestPlanner_ParentExpansion(t *testing.T) {
	h := genre.Default()
	planner := song.NewPlanner(h)

	plan, _ := planner.Plans(song.FilterSpec{ParentGenres: []string{"metal"}})
	require.Len(t, plan.Predicates, 1)
	assert.Equal(t, h.Subgenres("metal"), plan.Predicates[0].Args[0])

	// Subgenre and parent selections are independent predicates.
	both, _ := planner.Plans(song.FilterSpec{
		Genres:       []string{"grime"},
		ParentGenres: []string{"metal"},
	})
	assert.Len(t, both.Predicates, 2)

	// Unknown parent: empty overlap set, no matches, not an error.
	unknown, _ := planner.Plans(song.FilterSpec{ParentGenres: []string{"nonexistent"}})
	require.Len(t, unknown.Predicates, 1)
	assert.Empty(t, unknown.Predicates[0].Args[0])
}

/*
TestPlanner_ArtistScope verifies the programmatic artist restriction adds
a single junction predicate bound to the artist ID.
*/
func TestPlanner_ArtistScope(t *testing.T) {
	plan, count := newPlanner().Plans(song.FilterSpec{ArtistID: "0198d2f0-0000-7000-8000-000000000001"})

	require.Len(t, plan.Predicates, 1)
	assert.Contains(t, plan.Predicates[0].Fragment, "sa.artistid")
	assert.Equal(t, []any{"0198d2f0-0000-7000-8000-000000000001"}, plan.Predicates[0].Args)
	assert.Equal(t, plan.Predicates, count.Predicates)
}

/*
TestRender_PlaceholderNumbering checks the final rendering pass: markers
become sequential positional placeholders, argument order matches
placeholder order, and no neutral marker survives.
*/
func TestRender_PlaceholderNumbering(t *testing.T) {
	filter := song.FilterSpec{
		Query:         "fur",
		VeganFocus:    []string{"explicit"},
		AdvocacyStyle: []string{"direct"},
		Genres:        []string{"crust punk"},
		Energy:        song.Range{Min: pointer.To(0.2), Max: pointer.To(0.9)},
		Year:          song.YearRange{From: pointer.To(2000), To: pointer.To(2020)},
	}

	plan, _ := newPlanner().Plans(filter)
	clause, args, next := song.Render(plan.Predicates, 1)

	assert.NotContains(t, clause, song.Placeholder)
	// 4 text + 1 facet + 1 facet + 1 genre + 2 range + 2 year = 11 args.
	assert.Len(t, args, 11)
	assert.Equal(t, 12, next)

	for i := 1; i <= len(args); i++ {
		assert.Contains(t, clause, "$"+strconv.Itoa(i))
	}
	assert.NotContains(t, clause, "$"+strconv.Itoa(len(args)+1))

	// Rendering from an offset start shifts every placeholder.
	shifted, shiftedArgs, shiftedNext := song.Render(plan.Predicates, 5)
	assert.Equal(t, args, shiftedArgs)
	assert.Equal(t, 16, shiftedNext)
	assert.NotContains(t, shifted, "$1,")
	assert.Contains(t, shifted, "$5")
}

/*
TestPlanner_Pagination covers page/limit clamping and offset math.
*/
func TestPlanner_Pagination(t *testing.T) {
	planner := newPlanner()

	tests := []struct {
		name       string
		page       int
		limit      int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, pagination.DefaultLimit, 0},
		{"negative_page_behaves_as_first", -3, 10, 10, 0},
		{"fourth_page", 4, 20, 20, 60},
		{"excessive_limit_clamped", 1, 5000, pagination.DefaultLimit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, _ := planner.Plans(song.FilterSpec{Page: tt.page, Limit: tt.limit})
			assert.Equal(t, tt.wantLimit, plan.Limit)
			assert.Equal(t, tt.wantOffset, plan.Offset)
		})
	}
}

/*
TestSort_OrderBy checks the sort enum mapping, the fallback for unknown
keys, and nulls-last handling on nullable columns.
*/
func TestSort_OrderBy(t *testing.T) {
	planner := newPlanner()

	popularity, _ := planner.Plans(song.FilterSpec{Sort: song.ParseSort("bogus")})
	assert.Contains(t, popularity.OrderBy, "popularity DESC")
	assert.Contains(t, popularity.OrderBy, "title ASC")

	energy, _ := planner.Plans(song.FilterSpec{Sort: song.SortEnergy})
	assert.Contains(t, energy.OrderBy, "energy DESC NULLS LAST")

	year, _ := planner.Plans(song.FilterSpec{Sort: song.SortYear})
	assert.Contains(t, year.OrderBy, "releasedate DESC NULLS LAST")

	artist, _ := planner.Plans(song.FilterSpec{Sort: song.SortArtist})
	assert.Contains(t, artist.OrderBy, "NULLS LAST")

	title, _ := planner.Plans(song.FilterSpec{Sort: song.SortTitle})
	assert.Equal(t, "s.title ASC", title.OrderBy)
}
