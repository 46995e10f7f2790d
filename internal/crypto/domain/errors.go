package domain

import (
	"github.com/allisson/workspaces/internal/errors"
)

// Cryptographic operation error definitions.
//
// Decryption and envelope-parse errors wrap errors.ErrInvalidInput so callers
// can collapse them into a generic "not found" outcome at the boundary where a
// credential is resolved for use. ErrUnknownKeyVersion deliberately does not:
// it signals a configuration fault (missing key material), not bad data, and
// must surface as an internal error rather than degrade silently.
var (
	// ErrUnsupportedAlgorithm indicates the requested AEAD algorithm is not
	// supported. Supported: aes-gcm, chacha20-poly1305.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the key material is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates an AEAD open failed: tampered ciphertext,
	// corrupted data, or a field name that does not match the one bound at
	// encryption time. The specific cause is never disclosed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrUnknownKeyVersion indicates an envelope references a key version the
	// process does not hold. This is fatal at the configuration level: the
	// deployment lost key material and cannot decrypt historical data.
	ErrUnknownKeyVersion = errors.New("unknown key version")
)

// Envelope parse error definitions. All wrap errors.ErrInvalidInput; a caller
// resolving a stored credential maps any of them to "not found" rather than
// failing the request.
var (
	// ErrInvalidEnvelopeFormat indicates the persisted text is not a valid
	// envelope encoding.
	ErrInvalidEnvelopeFormat = errors.Wrap(errors.ErrInvalidInput, "invalid envelope format")

	// ErrInvalidEnvelopeBase64 indicates a binary field failed base64 decoding.
	ErrInvalidEnvelopeBase64 = errors.Wrap(errors.ErrInvalidInput, "invalid envelope base64")

	// ErrInvalidEnvelopeIV indicates the IV is not exactly 12 bytes.
	ErrInvalidEnvelopeIV = errors.Wrap(errors.ErrInvalidInput, "invalid envelope iv")

	// ErrInvalidEnvelopeTag indicates the tag is not exactly 16 bytes.
	ErrInvalidEnvelopeTag = errors.Wrap(errors.ErrInvalidInput, "invalid envelope tag")
)

// Keyset loading error definitions.
var (
	// ErrCredentialKeysNotSet indicates CREDENTIAL_KEYS is not configured.
	ErrCredentialKeysNotSet = errors.New("CREDENTIAL_KEYS environment variable is not set")

	// ErrActiveKeyVersionNotSet indicates CREDENTIAL_ACTIVE_KEY_VERSION is not configured.
	ErrActiveKeyVersionNotSet = errors.New("CREDENTIAL_ACTIVE_KEY_VERSION environment variable is not set")

	// ErrInvalidKeysFormat indicates a CREDENTIAL_KEYS entry is not "version:base64key".
	ErrInvalidKeysFormat = errors.New("invalid CREDENTIAL_KEYS format")

	// ErrInvalidKeyBase64 indicates a key entry failed base64 decoding.
	ErrInvalidKeyBase64 = errors.New("invalid credential key base64")

	// ErrDuplicateKeyVersion indicates the same version appears twice in CREDENTIAL_KEYS.
	ErrDuplicateKeyVersion = errors.New("duplicate credential key version")

	// ErrActiveKeyVersionNotFound indicates the active version is not present in the keyset.
	ErrActiveKeyVersionNotFound = errors.New("active credential key version not found in keyset")
)
