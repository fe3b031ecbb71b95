// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package genre_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theveganplaylist/server/internal/genre"
)

/*
TestHierarchy_ParentOf checks raw string resolution, including the
normalization, catch-all, and empty-input rules.
*/
func TestHierarchy_ParentOf(t *testing.T) {
	h := genre.Default()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"known_subgenre", "death metal", "metal"},
		{"mixed_case", "Death Metal", "metal"},
		{"surrounding_whitespace", "  grime  ", "hip-hop"},
		{"parent_name_is_own_member", "punk", "punk"},
		{"unrecognized", "vaporwave polka", "other"},
		{"empty", "", ""},
		{"whitespace_only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.ParentOf(tt.raw))
		})
	}
}

/*
TestHierarchy_Subgenres verifies the member listing: sorted output,
case-insensitive lookup, and the empty result for unknown parents.
*/
func TestHierarchy_Subgenres(t *testing.T) {
	h := genre.Default()

	members := h.Subgenres("metal")
	require.NotEmpty(t, members)
	assert.True(t, sort.StringsAreSorted(members))
	assert.Contains(t, members, "death metal")
	assert.Contains(t, members, "melodic death metal")

	assert.Equal(t, members, h.Subgenres("  METAL "))
	assert.Empty(t, h.Subgenres("nonexistent"))

	// The reserved catch-all has no fixed members.
	assert.Empty(t, h.Subgenres(genre.ParentOther))
}

/*
TestHierarchy_Listings covers the sorted, deduplicated parent and subgenre
enumerations used by the filter-options endpoint.
*/
func TestHierarchy_Listings(t *testing.T) {
	h := genre.Default()

	parents := h.Parents()
	assert.True(t, sort.StringsAreSorted(parents))
	assert.Contains(t, parents, "punk")
	assert.Contains(t, parents, genre.ParentOther)

	all := h.AllSubgenres()
	assert.True(t, sort.StringsAreSorted(all))
	assert.Contains(t, all, "grime")
	assert.NotContains(t, all, "uk grime")

	// Every listed subgenre must resolve back to a real parent.
	for _, sub := range all {
		parent := h.ParentOf(sub)
		assert.NotEqual(t, genre.ParentOther, parent, "subgenre %q resolves to the catch-all", sub)
		assert.Contains(t, parents, parent)
	}
}

/*
TestHierarchy_Expand verifies parent-to-subgenre expansion for search
filters, including unknown parents contributing nothing.
*/
func TestHierarchy_Expand(t *testing.T) {
	h := genre.Default()

	expanded := h.Expand([]string{"metal", "hardcore"})
	assert.True(t, sort.StringsAreSorted(expanded))
	assert.Contains(t, expanded, "death metal")
	assert.Contains(t, expanded, "melodic hardcore")
	assert.NotContains(t, expanded, "grime")

	assert.Empty(t, h.Expand(nil))
	assert.Empty(t, h.Expand([]string{"nonexistent"}))
	assert.Equal(t, h.Subgenres("ska"), h.Expand([]string{"ska", "nonexistent"}))
}

/*
TestNew_RejectsDuplicateSubgenre pins the configuration invariant: a
subgenre listed under two parents makes the reverse index ambiguous and
must fail construction.
*/
func TestNew_RejectsDuplicateSubgenre(t *testing.T) {
	_, err := genre.New(map[string][]string{
		"punk": {"punk", "ska punk"},
		"ska":  {"ska", "ska punk"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ska punk")

	_, err = genre.New(map[string][]string{
		genre.ParentOther: {"something"},
	})
	require.Error(t, err)
}
