// Package service implements the cryptographic services for field-level
// credential encryption: AEAD cipher construction and the field cipher that
// binds field names into authentication tags.
package service

import (
	cryptoDomain "github.com/allisson/workspaces/internal/crypto/domain"
)

// AEAD defines the interface for authenticated encryption with associated data.
// Implementations are stateless and safe for concurrent use.
type AEAD interface {
	// Encrypt encrypts plaintext with a fresh random nonce, authenticating aad.
	// The returned ciphertext has the authentication tag appended.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)
	// Decrypt verifies the tag over (ciphertext, aad) and returns the plaintext.
	// Tag verification is constant-time (property of the underlying primitive).
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// FieldCipher defines the interface for encrypting and decrypting named
// credential fields. The field name is bound into the authentication tag, so
// an envelope produced for one field fails decryption when presented with
// another, even with untouched ciphertext and tag.
type FieldCipher interface {
	// EncryptField encrypts plaintext under the current key version with a
	// fresh IV, using fieldName as associated data. Never fails for
	// well-formed input beyond IV generation.
	EncryptField(fieldName, plaintext string) (cryptoDomain.Envelope, error)

	// DecryptField decrypts an envelope using the key version it records.
	// Returns ErrUnknownKeyVersion if the version is absent from the keyset
	// (a configuration fault, not a per-request error) and ErrDecryptionFailed
	// on tag mismatch from tampering, corruption, or a wrong field name.
	DecryptField(fieldName string, envelope cryptoDomain.Envelope) (string, error)
}
