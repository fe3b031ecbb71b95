// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package spotify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestParseReleaseDate verifies upstream release dates resolve at their
declared precision and malformed values yield no date at all.
*/
func TestParseReleaseDate(t *testing.T) {
	cases := []struct {
		name      string
		value     string
		precision string
		want      string
	}{
		{name: "day", value: "2015-03-10", precision: "day", want: "2015-03-10"},
		{name: "month", value: "2015-03", precision: "month", want: "2015-03-01"},
		{name: "year", value: "2015", precision: "year", want: "2015-01-01"},
		{name: "malformed", value: "someday", precision: "day", want: ""},
		{name: "precision_mismatch", value: "2015", precision: "day", want: ""},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			parsed := parseReleaseDate(testCase.value, testCase.precision)

			if testCase.want == "" {
				assert.Nil(t, parsed)
				return
			}

			require.NotNil(t, parsed)
			assert.Equal(t, testCase.want, parsed.Format(time.DateOnly))
		})
	}
}

/*
TestPerformedBy verifies only tracks crediting the imported artist are
considered part of the discography.
*/
func TestPerformedBy(t *testing.T) {
	track := TrackObject{ID: "t1", Name: "Open Cages"}
	track.Artists = []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}{
		{ID: "a1", Name: "Headliner"},
		{ID: "a2", Name: "Guest"},
	}

	assert.True(t, performedBy(track, "a1"))
	assert.True(t, performedBy(track, "a2"))
	assert.False(t, performedBy(track, "a3"))
}
