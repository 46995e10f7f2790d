package service

import (
	"fmt"
	"time"

	cryptoDomain "github.com/allisson/workspaces/internal/crypto/domain"
)

// fieldCipherService implements the FieldCipher interface on top of a
// versioned keyset.
//
// New encryptions always use the keyset's current version; decryption uses
// whatever version the envelope records, so envelopes written before a
// rotation keep decrypting. The service holds no mutable state beyond the
// immutable keyset and is safe for concurrent use.
type fieldCipherService struct {
	keyset      *cryptoDomain.Keyset
	algorithm   cryptoDomain.Algorithm
	aeadManager AEADManager
}

// NewFieldCipher creates a FieldCipher using the provided keyset, algorithm,
// and AEAD manager. The keyset must outlive the cipher; it is injected rather
// than fetched from any process-global state so call sites and tests can use
// disposable key sets.
func NewFieldCipher(
	keyset *cryptoDomain.Keyset,
	algorithm cryptoDomain.Algorithm,
	aeadManager AEADManager,
) FieldCipher {
	return &fieldCipherService{
		keyset:      keyset,
		algorithm:   algorithm,
		aeadManager: aeadManager,
	}
}

// EncryptField encrypts a named credential field under the current key version.
//
// The field name is passed as associated data, binding it into the
// authentication tag: swapping envelopes between fields is detected at
// decryption even when ciphertext bytes are untouched. The AEAD seal output
// carries the tag appended to the ciphertext; the envelope stores them
// separately.
func (f *fieldCipherService) EncryptField(
	fieldName, plaintext string,
) (cryptoDomain.Envelope, error) {
	version := f.keyset.CurrentVersion()
	key, found := f.keyset.Get(version)
	if !found {
		// Keyset construction guarantees the current version exists; reaching
		// this means the keyset was closed while still in use.
		return cryptoDomain.Envelope{}, fmt.Errorf("%w: %d", cryptoDomain.ErrUnknownKeyVersion, version)
	}

	aead, err := f.aeadManager.CreateCipher(key.Material, f.algorithm)
	if err != nil {
		return cryptoDomain.Envelope{}, err
	}

	sealed, iv, err := aead.Encrypt([]byte(plaintext), []byte(fieldName))
	if err != nil {
		return cryptoDomain.Envelope{}, fmt.Errorf("failed to encrypt field %q: %w", fieldName, err)
	}

	// Seal appends the tag to the ciphertext; the envelope keeps them apart.
	tagStart := len(sealed) - cryptoDomain.TagSize
	envelope := cryptoDomain.Envelope{
		Ciphertext:  sealed[:tagStart],
		IV:          iv,
		Tag:         sealed[tagStart:],
		KeyVersion:  version,
		EncryptedAt: time.Now().UTC(),
	}

	return envelope, nil
}

// DecryptField decrypts an envelope for the named credential field.
//
// The key is selected by the envelope's recorded version. A missing version
// is a configuration fault (ErrUnknownKeyVersion): the process cannot decrypt
// data it is responsible for, which is not a per-request condition. Any tag
// mismatch, whether from tampering, corruption, or a wrong field name, is
// reported as ErrDecryptionFailed without distinguishing the cause.
func (f *fieldCipherService) DecryptField(
	fieldName string,
	envelope cryptoDomain.Envelope,
) (string, error) {
	key, found := f.keyset.Get(envelope.KeyVersion)
	if !found {
		return "", fmt.Errorf("%w: %d", cryptoDomain.ErrUnknownKeyVersion, envelope.KeyVersion)
	}

	aead, err := f.aeadManager.CreateCipher(key.Material, f.algorithm)
	if err != nil {
		return "", err
	}

	// Rejoin ciphertext and tag into the sealed form the AEAD expects.
	sealed := make([]byte, 0, len(envelope.Ciphertext)+len(envelope.Tag))
	sealed = append(sealed, envelope.Ciphertext...)
	sealed = append(sealed, envelope.Tag...)

	plaintext, err := aead.Decrypt(sealed, envelope.IV, []byte(fieldName))
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	return string(plaintext), nil
}
