// Package domain defines the authorization decision model.
//
// Authorization resolves two questions: does the acting user own a specific
// resource (possibly with an administrative override), and what can the user
// do inside a workspace. Both answers are ephemeral values produced fresh per
// request; membership can change between calls, so decisions are never cached.
package domain

// ResourceKind identifies the type of a tenant resource under authorization.
type ResourceKind string

const (
	ResourceKindTask       ResourceKind = "task"
	ResourceKindCredential ResourceKind = "credential"
)

// IsValid reports whether the kind is a member of the closed enum.
func (k ResourceKind) IsValid() bool {
	switch k {
	case ResourceKindTask, ResourceKindCredential:
		return true
	}
	return false
}

// Reason explains how an ownership decision was reached. It is kept for
// internal logging and tests; the route layer maps decisions to response
// codes without exposing the reason.
type Reason string

const (
	// ReasonOwner grants access because the user created the resource.
	ReasonOwner Reason = "owner"
	// ReasonAdminOverride grants access because the user holds an admin or
	// owner role and the call site opted into overrides.
	ReasonAdminOverride Reason = "admin_override"
	// ReasonNotOwner denies access: the user exists in the workspace but does
	// not own the resource and no override applies.
	ReasonNotOwner Reason = "not_owner"
	// ReasonNotFound denies access: the resource does not exist or is
	// soft-deleted. Indistinguishable from never having existed.
	ReasonNotFound Reason = "not_found"
)
