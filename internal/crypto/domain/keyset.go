// Package domain defines the core cryptographic domain models for field-level
// credential encryption.
//
// Credential fields are encrypted with a versioned keyset: exactly one key
// version is current for new encryptions, while every version remains
// available to decrypt envelopes written before a rotation. The field name is
// bound into the authentication tag as associated data, so an envelope
// written for one field can never be substituted for another.
package domain

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Key is a single symmetric key in the keyset.
//
// Fields:
//   - Version: integer version selecting this key (monotonically assigned)
//   - Material: the raw 32-byte key material, never persisted
type Key struct {
	Version  uint
	Material []byte
}

// Keyset manages the process's credential encryption keys with thread-safe
// access. The current version is used for new encryptions; older versions are
// kept for decrypting previously written envelopes.
//
// A Keyset is loaded once at startup and immutable thereafter. Call Close on
// shutdown to wipe key material from memory.
type Keyset struct {
	current uint
	keys    sync.Map
}

// KMSKeeper abstracts the KMS primitive used to unwrap key material at
// startup. *secrets.Keeper from gocloud.dev implements it.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// CurrentVersion returns the key version used for new encryptions.
func (k *Keyset) CurrentVersion() uint {
	return k.current
}

// Get retrieves a key from the keyset by its version.
func (k *Keyset) Get(version uint) (*Key, bool) {
	if key, ok := k.keys.Load(version); ok {
		return key.(*Key), ok
	}

	return nil, false
}

// Close securely clears all key material and resets the keyset.
func (k *Keyset) Close() {
	k.keys.Range(func(version, value interface{}) bool {
		if key, ok := value.(*Key); ok {
			Zero(key.Material)
		}
		return true
	})
	k.current = 0
	k.keys.Clear()
}

// NewKeyset creates a Keyset from the given keys with the given current version.
// Returns an error if a key is not 32 bytes, a version appears twice, or the
// current version is absent.
func NewKeyset(keys []*Key, current uint) (*Keyset, error) {
	ks := &Keyset{current: current}

	for _, key := range keys {
		if len(key.Material) != KeySize {
			ks.Close()
			return nil, fmt.Errorf(
				"%w: key version %d must be %d bytes, got %d",
				ErrInvalidKeySize,
				key.Version,
				KeySize,
				len(key.Material),
			)
		}
		if _, exists := ks.keys.Load(key.Version); exists {
			ks.Close()
			return nil, fmt.Errorf("%w: %d", ErrDuplicateKeyVersion, key.Version)
		}
		ks.keys.Store(key.Version, key)
	}

	if _, ok := ks.Get(current); !ok {
		ks.Close()
		return nil, fmt.Errorf("%w: version %d", ErrActiveKeyVersionNotFound, current)
	}

	return ks, nil
}

// LoadKeysetFromEnv loads the credential keyset from environment variables.
//
// Two variables are read:
//   - CREDENTIAL_KEYS: comma-separated entries in format "version:base64key"
//   - CREDENTIAL_ACTIVE_KEY_VERSION: version used for new encryptions
//
// Example:
//
//	CREDENTIAL_KEYS="1:YWJjZGVmZ2hpamtsbW5vcHFyc3R1dnd4eXoxMjM0NTY3OA==,2:MTIzNDU2Nzg5MGFiY2RlZmdoaWprbG1ub3BxcnN0dXZ3eA=="
//	CREDENTIAL_ACTIVE_KEY_VERSION="2"
//
// Each key must decode to exactly 32 bytes. When unwrap is non-nil, each
// base64 entry is treated as KMS-wrapped ciphertext and unwrapped through it
// before use, so plaintext key material never appears in the environment.
// Temporary decoded bytes are zeroed after being stored in the keyset.
func LoadKeysetFromEnv(ctx context.Context, unwrap KMSKeeper) (*Keyset, error) {
	raw := os.Getenv("CREDENTIAL_KEYS")
	if raw == "" {
		return nil, ErrCredentialKeysNotSet
	}

	activeRaw := os.Getenv("CREDENTIAL_ACTIVE_KEY_VERSION")
	if activeRaw == "" {
		return nil, ErrActiveKeyVersionNotSet
	}
	active, err := strconv.ParseUint(activeRaw, 10, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: CREDENTIAL_ACTIVE_KEY_VERSION=%q", ErrInvalidKeysFormat, activeRaw)
	}

	var keys []*Key
	for part := range strings.SplitSeq(raw, ",") {
		p := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(p) != 2 {
			zeroKeys(keys)
			return nil, fmt.Errorf("%w: %q", ErrInvalidKeysFormat, part)
		}

		version, err := strconv.ParseUint(p[0], 10, 0)
		if err != nil {
			zeroKeys(keys)
			return nil, fmt.Errorf("%w: version %q", ErrInvalidKeysFormat, p[0])
		}

		material, err := base64.StdEncoding.DecodeString(p[1])
		if err != nil {
			zeroKeys(keys)
			return nil, fmt.Errorf("%w for version %d: %v", ErrInvalidKeyBase64, version, err)
		}

		if unwrap != nil {
			unwrapped, err := unwrap.Decrypt(ctx, material)
			Zero(material)
			if err != nil {
				zeroKeys(keys)
				return nil, fmt.Errorf("failed to unwrap key version %d: %w", version, err)
			}
			material = unwrapped
		}

		keys = append(keys, &Key{Version: uint(version), Material: material})
	}

	ks, err := NewKeyset(keys, uint(active))
	if err != nil {
		return nil, err
	}

	return ks, nil
}

// zeroKeys wipes the material of partially loaded keys on error paths.
func zeroKeys(keys []*Key) {
	for _, key := range keys {
		Zero(key.Material)
	}
}
