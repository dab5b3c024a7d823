// SPDX-License-Identifier: Apache-2.0

package citation

import "slices"

// RoleReviewer is the role allowed to annotate articles.
const RoleReviewer = "reviewer"

// Identity is the caller as reported by the auth provider. It is passed in per
// call; nothing in this package reads a session of its own.
type Identity struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
}

// HasRole reports whether the identity carries role.
func (i Identity) HasRole(role string) bool {
	return slices.Contains(i.Roles, role)
}

// CanCite reports whether selection capture should be enabled for the identity.
func (i Identity) CanCite() bool {
	return i.UserID != "" && i.HasRole(RoleReviewer)
}
