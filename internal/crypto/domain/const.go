package domain

// Algorithm represents the AEAD algorithm used for field encryption.
//
// Both supported algorithms provide authenticated encryption with associated
// data: confidentiality for the credential value plus tamper detection over
// the ciphertext and the bound field name. Both use 32-byte keys, 12-byte
// nonces, and 16-byte authentication tags, so envelopes have the same shape
// regardless of algorithm.
//
// The algorithm is a process-wide choice applied to every key version; it is
// not recorded in the envelope. Switching algorithms invalidates previously
// written envelopes.
type Algorithm string

const (
	// AESGCM represents the AES-256-GCM authenticated encryption algorithm.
	// Preferred on CPUs with AES-NI hardware acceleration.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents the ChaCha20-Poly1305 authenticated encryption
	// algorithm. Constant-time in software; preferred without AES-NI.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

const (
	// KeySize is the required key length in bytes for both algorithms.
	KeySize = 32

	// IVSize is the AEAD nonce length in bytes.
	IVSize = 12

	// TagSize is the authentication tag length in bytes.
	TagSize = 16
)
