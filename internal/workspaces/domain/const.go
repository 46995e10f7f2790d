// Package domain defines the core domain models for multi-tenant workspaces.
// A workspace is the tenant boundary: every task and credential belongs to
// exactly one workspace, and access is derived from workspace membership.
package domain

import "fmt"

// Role is a workspace member's privilege level.
//
// Roles form a total order; higher values carry strictly more privilege.
// Capability checks compare roles numerically, never by name, so adding a
// role means placing it in the order and nothing else.
type Role int

const (
	RoleViewer Role = iota + 1
	RoleStakeholder
	RoleDeveloper
	RolePM
	RoleAdmin
	RoleOwner
)

// roleNames maps roles to their persisted and API representation.
var roleNames = map[Role]string{
	RoleViewer:      "viewer",
	RoleStakeholder: "stakeholder",
	RoleDeveloper:   "developer",
	RolePM:          "pm",
	RoleAdmin:       "admin",
	RoleOwner:       "owner",
}

// String returns the persisted name of the role, or "unknown" for values
// outside the enum.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// IsValid reports whether the role is a member of the closed enum.
func (r Role) IsValid() bool {
	_, ok := roleNames[r]
	return ok
}

// CanRead reports whether the role may read workspace resources.
// Every valid role can read.
func (r Role) CanRead() bool {
	return r >= RoleViewer && r.IsValid()
}

// CanWrite reports whether the role may create and modify workspace resources.
func (r Role) CanWrite() bool {
	return r >= RoleDeveloper && r.IsValid()
}

// CanAdmin reports whether the role may manage workspace membership and
// settings.
func (r Role) CanAdmin() bool {
	return r >= RoleAdmin && r.IsValid()
}

// ParseRole converts a persisted role name into a Role.
func ParseRole(name string) (Role, error) {
	for role, roleName := range roleNames {
		if roleName == name {
			return role, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRole, name)
}
