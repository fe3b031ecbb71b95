// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

/*
Package genre maintains the static two-level genre taxonomy and the pure
classification logic that maps raw upstream genre tags onto it.

Every subgenre belongs to exactly one parent family ("death metal" →
"metal"). The reserved parent "other" catches any tag not listed below.
The hierarchy is compiled-in configuration: it is built and validated once
at process start and never mutated afterwards, so it is safe for
unrestricted concurrent reads without locking. If it ever needs to change
at runtime, build a whole new [Hierarchy] and swap it atomically.
*/
package genre

import (
	"fmt"
	"sort"
	"strings"
)

// ParentOther is the reserved catch-all parent for unrecognized genres.
const ParentOther = "other"

// families is the single authoritative copy of the taxonomy. Both the
// classifier and the search filter expansion read from here; there must
// never be a second copy of this table anywhere in the codebase.
var families = map[string][]string{
	"punk": {
		"punk", "punk rock", "pop punk", "post-punk", "anarcho-punk",
		"crust punk", "folk punk", "garage punk", "skate punk",
		"street punk", "horror punk", "oi", "riot grrrl", "queercore",
		"emo", "proto-punk",
	},
	"hardcore": {
		"hardcore", "hardcore punk", "melodic hardcore", "metalcore",
		"deathcore", "post-hardcore", "beatdown hardcore", "powerviolence",
		"straight edge", "screamo", "crossover thrash",
	},
	"metal": {
		"metal", "heavy metal", "death metal", "melodic death metal",
		"black metal", "doom metal", "sludge metal", "thrash metal",
		"progressive metal", "power metal", "grindcore", "nu metal",
		"groove metal", "speed metal", "stoner metal",
	},
	"rock": {
		"rock", "classic rock", "hard rock", "alternative rock",
		"indie rock", "psychedelic rock", "progressive rock",
		"garage rock", "post-rock", "grunge", "stoner rock", "art rock",
		"soft rock", "southern rock", "indie", "shoegaze", "lo-fi",
	},
	"folk": {
		"folk", "indie folk", "folk rock", "contemporary folk",
		"traditional folk", "americana", "singer-songwriter", "acoustic",
	},
	"blues": {
		"blues", "blues rock", "delta blues", "electric blues",
		"country blues", "chicago blues",
	},
	"pop": {
		"pop", "indie pop", "synth-pop", "dream pop", "electropop",
		"power pop", "art pop", "dance pop", "bedroom pop",
	},
	"hip-hop": {
		"hip-hop", "hip hop", "rap", "grime", "conscious hip hop",
		"underground hip hop", "trap", "boom bap", "alternative hip hop",
	},
	"electronic": {
		"electronic", "techno", "house", "drum and bass", "dubstep",
		"edm", "ambient", "idm", "trance", "downtempo", "industrial",
	},
	"reggae": {
		"reggae", "dub", "roots reggae", "dancehall",
	},
	"ska": {
		"ska", "ska punk", "two tone", "rocksteady",
	},
	"jazz": {
		"jazz", "free jazz", "jazz fusion", "smooth jazz", "swing",
	},
	"soul": {
		"soul", "funk", "neo soul", "r&b", "motown", "disco",
	},
	"country": {
		"country", "alt-country", "bluegrass", "outlaw country",
		"honky tonk",
	},
	"experimental": {
		"experimental", "noise", "avant-garde", "spoken word",
	},
}

// Hierarchy is the immutable two-level genre taxonomy plus its derived
// reverse index (subgenre → parent).
type Hierarchy struct {
	// members maps parent → lexicographically sorted member subgenres.
	members map[string][]string
	// parentOf is the reverse index, built once at construction.
	parentOf map[string]string
}

// defaultHierarchy is the process-wide instance. Building it at init makes
// a configuration error (a subgenre listed under two parents) fatal before
// the server accepts any traffic.
var defaultHierarchy = mustBuild(families)

// Default returns the shared process-wide [Hierarchy].
func Default() *Hierarchy {
	return defaultHierarchy
}

// New builds a validated [Hierarchy] from a parent → subgenres table.
//
// It fails if any subgenre appears under more than one parent: the reverse
// index would be ambiguous, and classification results would depend on map
// iteration order.
func New(table map[string][]string) (*Hierarchy, error) {
	h := &Hierarchy{
		members:  make(map[string][]string, len(table)),
		parentOf: make(map[string]string),
	}

	for parent, subgenres := range table {
		parent = normalize(parent)
		if parent == "" || parent == ParentOther {
			return nil, fmt.Errorf("genre: %q is not a valid parent name", parent)
		}

		sorted := make([]string, 0, len(subgenres))
		for _, sub := range subgenres {
			sub = normalize(sub)
			if sub == "" {
				continue
			}
			if existing, dup := h.parentOf[sub]; dup {
				return nil, fmt.Errorf("genre: subgenre %q listed under both %q and %q", sub, existing, parent)
			}
			h.parentOf[sub] = parent
			sorted = append(sorted, sub)
		}

		sort.Strings(sorted)
		h.members[parent] = sorted
	}

	return h, nil
}

// mustBuild panics on an invalid table. Used only for the compiled-in
// configuration, where a violation is a programming error.
func mustBuild(table map[string][]string) *Hierarchy {
	h, err := New(table)
	if err != nil {
		panic(err)
	}
	return h
}

// ParentOf resolves a raw genre string to its parent family.
//
// The input is lowercased and trimmed before lookup. A blank input returns
// "" (no classification); any non-empty unrecognized input returns
// [ParentOther]. ParentOf is total: it never fails.
func (h *Hierarchy) ParentOf(raw string) string {
	normalized := normalize(raw)
	if normalized == "" {
		return ""
	}

	if parent, ok := h.parentOf[normalized]; ok {
		return parent
	}

	return ParentOther
}

// Subgenres returns the member subgenres of a parent, sorted
// lexicographically so ordering is stable across process runs. An unknown
// parent yields an empty slice, never an error.
func (h *Hierarchy) Subgenres(parent string) []string {
	members, ok := h.members[normalize(parent)]
	if !ok {
		return nil
	}

	// Copy so callers can't mutate the shared index.
	out := make([]string, len(members))
	copy(out, members)
	return out
}

// Parents returns every parent family name (including [ParentOther]),
// sorted and deduplicated.
func (h *Hierarchy) Parents() []string {
	out := make([]string, 0, len(h.members)+1)
	for parent := range h.members {
		out = append(out, parent)
	}
	out = append(out, ParentOther)

	sort.Strings(out)
	return out
}

// AllSubgenres returns every known subgenre across all parents, sorted and
// deduplicated.
func (h *Hierarchy) AllSubgenres() []string {
	out := make([]string, 0, len(h.parentOf))
	for sub := range h.parentOf {
		out = append(out, sub)
	}

	sort.Strings(out)
	return out
}

// Expand unions the member subgenres of the selected parents, for turning a
// parent-genre search filter into a concrete subgenre set. Unknown parents
// contribute nothing. The result is sorted and deduplicated.
func (h *Hierarchy) Expand(parents []string) []string {
	seen := make(map[string]struct{})
	for _, parent := range parents {
		for _, sub := range h.Subgenres(parent) {
			seen[sub] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for sub := range seen {
		out = append(out, sub)
	}

	sort.Strings(out)
	return out
}

// normalize lowercases and trims a raw genre tag.
func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
