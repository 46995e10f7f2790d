// Package domain defines the core domain models for workspace credentials.
// A credential is a named encrypted field (OAuth token, swarm API key,
// lightning-network public key) stored at rest as an opaque envelope; the
// plaintext only exists in memory while a request resolves it.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Credential is an encrypted named field belonging to a workspace. There is
// exactly one live row per (workspace, field); rotation replaces the envelope
// wholesale rather than versioning rows.
type Credential struct {
	// ID is the credential's unique identifier (UUIDv7).
	ID uuid.UUID
	// WorkspaceID is the workspace the credential belongs to.
	WorkspaceID uuid.UUID
	// CreatedByID is the user who first stored the credential.
	CreatedByID uuid.UUID
	// Field is the credential's name, bound into the envelope's
	// authentication tag as associated data.
	Field string
	// Envelope is the persisted textual encryption envelope. Opaque to the
	// persistence layer.
	Envelope string
	// CreatedAt is when the credential was first stored.
	CreatedAt time.Time
	// UpdatedAt is when the envelope was last replaced.
	UpdatedAt time.Time
	// DeletedAt marks the credential as soft-deleted when set.
	DeletedAt *time.Time
}
