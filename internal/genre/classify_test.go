// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package genre_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theveganplaylist/server/internal/genre"
	"github.com/theveganplaylist/server/pkg/pointer"
)

/*
TestHierarchy_Classify exercises the four resolution passes: exact match in
input order, keyword fallback in priority order, the "other" default, and
the empty result.
*/
func TestHierarchy_Classify(t *testing.T) {
	h := genre.Default()

	tests := []struct {
		name       string
		tags       []string
		wantGenre  *string
		wantParent *string
	}{
		{
			name:       "exact_match_first_in_input_order",
			tags:       []string{"uk grime", "grime"},
			wantGenre:  pointer.To("grime"),
			wantParent: pointer.To("hip-hop"),
		},
		{
			name:       "exact_match_beats_keyword_fallback",
			tags:       []string{"emo pop", "melodic hardcore"},
			wantGenre:  pointer.To("melodic hardcore"),
			wantParent: pointer.To("hardcore"),
		},
		{
			name:       "normalizes_case_and_whitespace",
			tags:       []string{" Melodic Death Metal "},
			wantGenre:  pointer.To("melodic death metal"),
			wantParent: pointer.To("metal"),
		},
		{
			name:       "keyword_priority_prefers_hardcore_over_rock",
			tags:       []string{"norwegian rock scene", "mysterious hardcore act"},
			wantGenre:  pointer.To("mysterious hardcore act"),
			wantParent: pointer.To("hardcore"),
		},
		{
			name:       "keyword_fallback_keeps_matching_tag_as_genre",
			tags:       []string{"vegan metal collective"},
			wantGenre:  pointer.To("vegan metal collective"),
			wantParent: pointer.To("metal"),
		},
		{
			name:       "unmatched_falls_back_to_first_tag_under_other",
			tags:       []string{"Vaporwave Polka", "chiptune"},
			wantGenre:  pointer.To("vaporwave polka"),
			wantParent: pointer.To("other"),
		},
		{
			name:       "fallback_skips_leading_blank_tags",
			tags:       []string{"", "zzz"},
			wantGenre:  pointer.To("zzz"),
			wantParent: pointer.To("other"),
		},
		{
			name: "empty_input",
			tags: nil,
		},
		{
			name: "blank_tags_only",
			tags: []string{"", "   "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.Classify(tt.tags)
			assert.Equal(t, tt.wantGenre, got.Genre)
			assert.Equal(t, tt.wantParent, got.ParentGenre)
		})
	}
}

/*
TestHierarchy_Classify_Idempotent verifies that re-classifying a previous
result is a fixed point, which is what makes the backfill safe to re-run.
*/
func TestHierarchy_Classify_Idempotent(t *testing.T) {
	h := genre.Default()

	inputs := [][]string{
		{"uk grime", "grime"},
		{"vegan metal collective"},
		{"vaporwave polka"},
	}

	for _, tags := range inputs {
		first := h.Classify(tags)
		require.NotNil(t, first.Genre)

		again := h.Classify([]string{*first.Genre})
		assert.Equal(t, first.ParentGenre, again.ParentGenre)
		assert.Equal(t, first.Genre, again.Genre)
	}
}
