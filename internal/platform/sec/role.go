// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package sec

// # Console Roles

// Role represents the authorization level granted to a console account.
type Role string

const (
	// Unrestricted access: imports, backfills, destructive edits
	RoleAdmin Role = "admin"

	// Can edit editorial content (facets, reviews) but not run imports
	RoleEditor Role = "editor"
)

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-20) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 20
	case RoleEditor:
		return 10
	default:
		return 0
	}
}
