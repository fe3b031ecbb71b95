// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theveganplaylist/server/pkg/pagination"
)

/*
TestNewMeta checks the page-count ceiling math.
*/
func TestNewMeta(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		limit     int
		wantPages int
	}{
		{"partial_last_page", 45, 20, 3},
		{"exact_division", 40, 20, 2},
		{"single_row", 1, 20, 1},
		{"empty", 0, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := pagination.NewMeta(1, tt.limit, tt.total)
			assert.Equal(t, tt.wantPages, meta.Pages)
			assert.Equal(t, tt.total, meta.Total)
		})
	}
}

/*
TestClamp covers the defaulting rules for out-of-range page and limit
values, including the offset derived from a requested page past the end.
*/
func TestClamp(t *testing.T) {
	params := pagination.Clamp(0, 0)
	assert.Equal(t, pagination.DefaultPage, params.Page)
	assert.Equal(t, pagination.DefaultLimit, params.Limit)
	assert.Equal(t, 0, params.Offset())

	params = pagination.Clamp(4, 20)
	assert.Equal(t, 4, params.Page)
	assert.Equal(t, 60, params.Offset())

	params = pagination.Clamp(-1, 1000)
	assert.Equal(t, pagination.DefaultPage, params.Page)
	assert.Equal(t, pagination.DefaultLimit, params.Limit)
}
