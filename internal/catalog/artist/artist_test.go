// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package artist_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theveganplaylist/server/internal/catalog/artist"
)

/*
TestFilterFromQuery checks decode normalization for the artist search:
both multi-value forms collapse, genre names lowercase and deduplicate,
and malformed paging input falls back to zero values for later clamping.
*/
func TestFilterFromQuery(t *testing.T) {
	values := url.Values{
		"q":             {" Moby "},
		"genres":        {"Grime", "grime,Death Metal"},
		"parent_genres": {"PUNK,ska"},
		"page":          {"two"},
		"limit":         {"25"},
	}

	f := artist.FilterFromQuery(values)

	assert.Equal(t, "Moby", f.Query)
	assert.Equal(t, []string{"death metal", "grime"}, f.Genres)
	assert.Equal(t, []string{"punk", "ska"}, f.ParentGenres)
	assert.Equal(t, 0, f.Page)
	assert.Equal(t, 25, f.Limit)
}

/*
TestFilterFromQuery_Empty verifies the zero filter decodes from a bare
query string.
*/
func TestFilterFromQuery_Empty(t *testing.T) {
	f := artist.FilterFromQuery(url.Values{})

	assert.Empty(t, f.Query)
	assert.Nil(t, f.Genres)
	assert.Nil(t, f.ParentGenres)
}
