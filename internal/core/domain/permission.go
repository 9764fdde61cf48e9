package domain

import "strings"

// Permission is a bitmask of capabilities granted by a Role.
type Permission uint

const (
	PermissionFollow   Permission = 1 << iota // follow other users
	PermissionComment                         // comment on posts
	PermissionWrite                           // write posts
	PermissionModerate                        // moderate comments
	PermissionAdmin                           // administer the site
)

// AllPermissions lists every permission flag in ascending bit order.
var AllPermissions = []Permission{
	PermissionFollow,
	PermissionComment,
	PermissionWrite,
	PermissionModerate,
	PermissionAdmin,
}

var permissionNames = map[Permission]string{
	PermissionFollow:   "FOLLOW",
	PermissionComment:  "COMMENT",
	PermissionWrite:    "WRITE",
	PermissionModerate: "MODERATE",
	PermissionAdmin:    "ADMIN",
}

// Has reports whether p contains any bit of perm.
func (p Permission) Has(perm Permission) bool {
	return p&perm != 0
}

// Add returns p with perm set.
func (p Permission) Add(perm Permission) Permission {
	return p | perm
}

// Remove returns p with perm cleared.
func (p Permission) Remove(perm Permission) Permission {
	return p &^ perm
}

// String renders the set flags joined by "|", e.g. "FOLLOW|COMMENT".
func (p Permission) String() string {
	if p == 0 {
		return "NONE"
	}
	names := make([]string, 0, len(AllPermissions))
	for _, perm := range AllPermissions {
		if p.Has(perm) {
			names = append(names, permissionNames[perm])
		}
	}
	return strings.Join(names, "|")
}
