// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package genre

import "strings"

// Classification is the resolved primary genre of a song or artist. Both
// fields are nil when no genre information was available at all.
type Classification struct {
	Genre       *string `json:"genre"`
	ParentGenre *string `json:"parent_genre"`
}

// keywordPriority orders the substring fallback of [Hierarchy.Classify].
// More specific scene keywords win over broader ones, so a tag like
// "post-hardcore rock" classifies as hardcore, not rock.
var keywordPriority = []string{"punk", "hardcore", "metal", "rock", "folk", "blues"}

// Classify picks a single primary genre from a raw upstream tag list.
//
// Resolution runs in four passes over the normalized tags:
//
//  1. Exact: the first tag (in input order) that is a known subgenre wins,
//     with its parent from the hierarchy.
//  2. Keyword: otherwise, the first [keywordPriority] keyword contained in
//     any tag wins; the matching tag becomes the genre and the keyword its
//     parent, so "post-hardcore rock" lands under hardcore, not rock.
//  3. Fallback: otherwise the first non-empty tag becomes the genre, with
//     parent [ParentOther]. Blank and whitespace-only tags are dropped
//     during normalization, so leading blanks never win the fallback.
//  4. Empty: no usable tags at all yields a zero Classification.
//
// Classify is pure and total: no I/O, no error path, and classifying an
// already-classified genre again returns the same result.
func (h *Hierarchy) Classify(rawTags []string) Classification {
	tags := make([]string, 0, len(rawTags))
	for _, raw := range rawTags {
		if normalized := normalize(raw); normalized != "" {
			tags = append(tags, normalized)
		}
	}
	if len(tags) == 0 {
		return Classification{}
	}

	for _, tag := range tags {
		if parent, ok := h.parentOf[tag]; ok {
			return Classification{Genre: &tag, ParentGenre: &parent}
		}
	}

	for _, keyword := range keywordPriority {
		for _, tag := range tags {
			if strings.Contains(tag, keyword) {
				kw := keyword
				return Classification{Genre: &tag, ParentGenre: &kw}
			}
		}
	}

	first := tags[0]
	other := ParentOther
	return Classification{Genre: &first, ParentGenre: &other}
}
