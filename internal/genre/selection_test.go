// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package genre_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theveganplaylist/server/internal/genre"
)

/*
TestSelection_ToggleSubgenre covers the single-subgenre transitions and the
derived parent state on both edges: selecting the final member auto-selects
the parent, deselecting any member auto-deselects it.
*/
func TestSelection_ToggleSubgenre(t *testing.T) {
	h := genre.Default()
	s := genre.NewSelection(h)

	s.ToggleSubgenre("death metal")
	assert.True(t, s.SubgenreSelected("death metal"))
	assert.False(t, s.ParentSelected("metal"))

	// Select every remaining member of metal; the parent flips on with the
	// last one.
	for _, sub := range h.Subgenres("metal") {
		s.ToggleSubgenre(sub)
	}
	// "death metal" was toggled twice (once above, once in the loop), so it
	// is now off again and the parent must be off too.
	assert.False(t, s.SubgenreSelected("death metal"))
	assert.False(t, s.ParentSelected("metal"))

	s.ToggleSubgenre("death metal")
	assert.True(t, s.ParentSelected("metal"))

	s.ToggleSubgenre("doom metal")
	assert.False(t, s.ParentSelected("metal"))
	assert.False(t, s.SubgenreSelected("doom metal"))
	assert.True(t, s.SubgenreSelected("death metal"))

	// Unknown names are ignored entirely.
	s.ToggleSubgenre("uk grime")
	assert.False(t, s.SubgenreSelected("uk grime"))
}

/*
TestSelection_ToggleParent verifies whole-family selection in both
directions.
*/
func TestSelection_ToggleParent(t *testing.T) {
	h := genre.Default()
	s := genre.NewSelection(h)

	s.ToggleParent("ska")
	assert.True(t, s.ParentSelected("ska"))
	assert.Equal(t, h.Subgenres("ska"), s.Subgenres())

	s.ToggleParent("ska")
	assert.False(t, s.ParentSelected("ska"))
	assert.Empty(t, s.Subgenres())

	// Unknown parents (including the memberless catch-all) are no-ops.
	s.ToggleParent("nonexistent")
	s.ToggleParent(genre.ParentOther)
	assert.Empty(t, s.Parents())
}

/*
TestSelection_Consistency walks a random-ish toggle sequence and asserts
the resting-state rule after every step: a parent is selected exactly when
all of its members are selected.
*/
func TestSelection_Consistency(t *testing.T) {
	h := genre.Default()
	s := genre.NewSelection(h)

	steps := []func(){
		func() { s.ToggleParent("blues") },
		func() { s.ToggleSubgenre("delta blues") },
		func() { s.ToggleSubgenre("delta blues") },
		func() { s.ToggleParent("reggae") },
		func() { s.ToggleSubgenre("dub") },
		func() { s.ToggleParent("reggae") },
		func() { s.ToggleSubgenre("grime") },
		func() { s.ToggleParent("blues") },
	}

	for i, step := range steps {
		step()
		for _, parent := range h.Parents() {
			members := h.Subgenres(parent)
			if len(members) == 0 {
				continue
			}
			all := true
			for _, sub := range members {
				if !s.SubgenreSelected(sub) {
					all = false
					break
				}
			}
			assert.Equal(t, all, s.ParentSelected(parent),
				"step %d: parent %q selection inconsistent with members", i, parent)
		}
	}
}

/*
TestSelection_SetSubgenres checks state restoration from request
parameters: unknown names are dropped and parents are re-derived.
*/
func TestSelection_SetSubgenres(t *testing.T) {
	h := genre.Default()
	s := genre.NewSelection(h)

	input := append(h.Subgenres("ska"), "grime", "uk grime", "  DUB  ")
	s.SetSubgenres(input)

	assert.True(t, s.ParentSelected("ska"))
	assert.False(t, s.ParentSelected("hip-hop"))
	assert.True(t, s.SubgenreSelected("grime"))
	assert.True(t, s.SubgenreSelected("dub"))
	assert.False(t, s.SubgenreSelected("uk grime"))

	require.Contains(t, s.Subgenres(), "ska punk")

	s.SetSubgenres(nil)
	assert.Empty(t, s.Subgenres())
	assert.Empty(t, s.Parents())
}
