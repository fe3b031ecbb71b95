// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package genre

import "sort"

// Selection tracks a hierarchical genre selection: a set of chosen
// subgenres plus the derived set of chosen parents. The consistency rule is
// that a parent is selected if and only if every one of its member
// subgenres is selected; every toggle below restores that rule before
// returning.
//
// A Selection is not safe for concurrent use. Each request builds its own.
type Selection struct {
	hierarchy *Hierarchy
	subgenres map[string]struct{}
	parents   map[string]struct{}
}

// NewSelection returns an empty selection over the given hierarchy.
func NewSelection(h *Hierarchy) *Selection {
	return &Selection{
		hierarchy: h,
		subgenres: make(map[string]struct{}),
		parents:   make(map[string]struct{}),
	}
}

// ToggleSubgenre flips one subgenre in or out of the selection.
//
// Selecting the last unselected member of a parent auto-selects the parent;
// deselecting any member of a fully-selected parent auto-deselects it.
// Names not present in the hierarchy are ignored.
func (s *Selection) ToggleSubgenre(name string) {
	name = normalize(name)
	parent, ok := s.hierarchy.parentOf[name]
	if !ok {
		return
	}

	if _, selected := s.subgenres[name]; selected {
		delete(s.subgenres, name)
		delete(s.parents, parent)
		return
	}

	s.subgenres[name] = struct{}{}
	if s.allMembersSelected(parent) {
		s.parents[parent] = struct{}{}
	}
}

// ToggleParent flips a whole family: selecting a parent selects every
// member subgenre, deselecting it deselects every member. Unknown parents
// are ignored.
func (s *Selection) ToggleParent(name string) {
	name = normalize(name)
	members, ok := s.hierarchy.members[name]
	if !ok {
		return
	}

	if _, selected := s.parents[name]; selected {
		delete(s.parents, name)
		for _, sub := range members {
			delete(s.subgenres, sub)
		}
		return
	}

	s.parents[name] = struct{}{}
	for _, sub := range members {
		s.subgenres[sub] = struct{}{}
	}
}

// SetSubgenres replaces the selection with exactly the given subgenres
// (unknown names dropped) and re-derives the parent set. Used to restore
// selection state from request parameters.
func (s *Selection) SetSubgenres(names []string) {
	s.subgenres = make(map[string]struct{}, len(names))
	s.parents = make(map[string]struct{})

	for _, name := range names {
		name = normalize(name)
		if _, ok := s.hierarchy.parentOf[name]; ok {
			s.subgenres[name] = struct{}{}
		}
	}

	for parent := range s.hierarchy.members {
		if s.allMembersSelected(parent) {
			s.parents[parent] = struct{}{}
		}
	}
}

// SubgenreSelected reports whether one subgenre is currently selected.
func (s *Selection) SubgenreSelected(name string) bool {
	_, ok := s.subgenres[normalize(name)]
	return ok
}

// ParentSelected reports whether a parent family is currently selected.
func (s *Selection) ParentSelected(name string) bool {
	_, ok := s.parents[normalize(name)]
	return ok
}

// Subgenres returns the selected subgenres, sorted.
func (s *Selection) Subgenres() []string {
	return sortedKeys(s.subgenres)
}

// Parents returns the selected parent families, sorted.
func (s *Selection) Parents() []string {
	return sortedKeys(s.parents)
}

func (s *Selection) allMembersSelected(parent string) bool {
	members := s.hierarchy.members[parent]
	if len(members) == 0 {
		return false
	}
	for _, sub := range members {
		if _, ok := s.subgenres[sub]; !ok {
			return false
		}
	}
	return true
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
