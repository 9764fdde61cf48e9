package domain

import (
	"fmt"
	"sort"
)

// RoleID is the enumerated identifier of a role. It doubles as the role's
// unique name in storage.
type RoleID string

const (
	RoleUser          RoleID = "User"
	RoleModerator     RoleID = "Moderator"
	RoleAdministrator RoleID = "Administrator"
)

// Role is a named bundle of permissions.
type Role struct {
	Name        RoleID     `json:"name"`
	Default     bool       `json:"default"`
	Permissions Permission `json:"permissions"`
}

// HasPermission reports whether the role grants perm.
func (r Role) HasPermission(perm Permission) bool {
	return r.Permissions.Has(perm)
}

// CanonicalRoles returns the roles every deployment must have, in
// ascending order of privilege. Exactly one of them is the default.
func CanonicalRoles() []Role {
	return []Role{
		{
			Name:        RoleUser,
			Default:     true,
			Permissions: PermissionFollow | PermissionComment | PermissionWrite,
		},
		{
			Name:        RoleModerator,
			Permissions: PermissionFollow | PermissionComment | PermissionWrite | PermissionModerate,
		},
		{
			Name: RoleAdministrator,
			Permissions: PermissionFollow | PermissionComment | PermissionWrite |
				PermissionModerate | PermissionAdmin,
		},
	}
}

// RoleTable is the read-only mapping from RoleID to Role loaded at startup.
type RoleTable struct {
	roles       map[RoleID]Role
	defaultRole RoleID
}

// NewRoleTable builds a table from roles. Exactly one role must be marked
// as default.
func NewRoleTable(roles []Role) (*RoleTable, error) {
	t := &RoleTable{roles: make(map[RoleID]Role, len(roles))}
	for _, r := range roles {
		if r.Default {
			if t.defaultRole != "" {
				return nil, fmt.Errorf("role table: %q and %q are both default", t.defaultRole, r.Name)
			}
			t.defaultRole = r.Name
		}
		t.roles[r.Name] = r
	}
	if t.defaultRole == "" {
		return nil, fmt.Errorf("role table: no default role")
	}
	return t, nil
}

// Resolve returns the role registered under id.
func (t *RoleTable) Resolve(id RoleID) (Role, bool) {
	r, ok := t.roles[id]
	return r, ok
}

// Default returns the role assigned to new users.
func (t *RoleTable) Default() Role {
	return t.roles[t.defaultRole]
}

// Roles returns every role in the table, least privileged first.
func (t *RoleTable) Roles() []Role {
	out := make([]Role, 0, len(t.roles))
	for _, r := range t.roles {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Permissions < out[j].Permissions })
	return out
}
