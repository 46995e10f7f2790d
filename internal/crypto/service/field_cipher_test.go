package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/workspaces/internal/crypto/domain"
	apperrors "github.com/allisson/workspaces/internal/errors"
)

func newTestKeyset(t *testing.T, versions ...uint) *cryptoDomain.Keyset {
	t.Helper()

	keys := make([]*cryptoDomain.Key, 0, len(versions))
	for _, v := range versions {
		material := make([]byte, cryptoDomain.KeySize)
		for i := range material {
			material[i] = byte(v)
		}
		keys = append(keys, &cryptoDomain.Key{Version: v, Material: material})
	}

	ks, err := cryptoDomain.NewKeyset(keys, versions[len(versions)-1])
	require.NoError(t, err)
	t.Cleanup(ks.Close)
	return ks
}

func TestFieldCipher_RoundTrip(t *testing.T) {
	for _, alg := range []cryptoDomain.Algorithm{cryptoDomain.AESGCM, cryptoDomain.ChaCha20} {
		t.Run(string(alg), func(t *testing.T) {
			cipher := NewFieldCipher(newTestKeyset(t, 1), alg, NewAEADManager())

			envelope, err := cipher.EncryptField("apiKey", "sk-live-secret-value")
			require.NoError(t, err)

			assert.Equal(t, uint(1), envelope.KeyVersion)
			assert.Len(t, envelope.IV, cryptoDomain.IVSize)
			assert.Len(t, envelope.Tag, cryptoDomain.TagSize)
			assert.False(t, envelope.EncryptedAt.IsZero())
			assert.NotContains(t, string(envelope.Ciphertext), "sk-live")

			plaintext, err := cipher.DecryptField("apiKey", envelope)
			require.NoError(t, err)
			assert.Equal(t, "sk-live-secret-value", plaintext)
		})
	}
}

func TestFieldCipher_RoundTripEmptyPlaintext(t *testing.T) {
	cipher := NewFieldCipher(newTestKeyset(t, 1), cryptoDomain.AESGCM, NewAEADManager())

	envelope, err := cipher.EncryptField("apiSecret", "")
	require.NoError(t, err)

	plaintext, err := cipher.DecryptField("apiSecret", envelope)
	require.NoError(t, err)
	assert.Equal(t, "", plaintext)
}

func TestFieldCipher_FieldBinding(t *testing.T) {
	cipher := NewFieldCipher(newTestKeyset(t, 1), cryptoDomain.AESGCM, NewAEADManager())

	envelope, err := cipher.EncryptField("apiKey", "swap-me")
	require.NoError(t, err)

	// An envelope sealed for one field must not open under another field name,
	// even with the same key and untouched ciphertext.
	_, err = cipher.DecryptField("apiSecret", envelope)
	require.Error(t, err)
	assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestFieldCipher_TamperDetection(t *testing.T) {
	cipher := NewFieldCipher(newTestKeyset(t, 1), cryptoDomain.AESGCM, NewAEADManager())

	tests := []struct {
		name   string
		mutate func(e *cryptoDomain.Envelope)
	}{
		{
			name:   "CiphertextBitFlip",
			mutate: func(e *cryptoDomain.Envelope) { e.Ciphertext[0] ^= 0x01 },
		},
		{
			name:   "TagBitFlip",
			mutate: func(e *cryptoDomain.Envelope) { e.Tag[0] ^= 0x01 },
		},
		{
			name:   "IVBitFlip",
			mutate: func(e *cryptoDomain.Envelope) { e.IV[0] ^= 0x01 },
		},
		{
			name:   "TruncatedCiphertext",
			mutate: func(e *cryptoDomain.Envelope) { e.Ciphertext = e.Ciphertext[:len(e.Ciphertext)-1] },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope, err := cipher.EncryptField("token", "tamper-target")
			require.NoError(t, err)

			tt.mutate(&envelope)

			_, err = cipher.DecryptField("token", envelope)
			require.Error(t, err)
			assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
		})
	}
}

func TestFieldCipher_KeyVersioning(t *testing.T) {
	// Envelope written while version 1 was current.
	oldCipher := NewFieldCipher(newTestKeyset(t, 1), cryptoDomain.AESGCM, NewAEADManager())
	oldEnvelope, err := oldCipher.EncryptField("apiKey", "pre-rotation-value")
	require.NoError(t, err)
	assert.Equal(t, uint(1), oldEnvelope.KeyVersion)

	// After rotation the keyset holds both versions with 2 current.
	rotatedCipher := NewFieldCipher(newTestKeyset(t, 1, 2), cryptoDomain.AESGCM, NewAEADManager())

	newEnvelope, err := rotatedCipher.EncryptField("apiKey", "post-rotation-value")
	require.NoError(t, err)
	assert.Equal(t, uint(2), newEnvelope.KeyVersion)

	// Both generations decrypt against the rotated keyset.
	plaintext, err := rotatedCipher.DecryptField("apiKey", oldEnvelope)
	require.NoError(t, err)
	assert.Equal(t, "pre-rotation-value", plaintext)

	plaintext, err = rotatedCipher.DecryptField("apiKey", newEnvelope)
	require.NoError(t, err)
	assert.Equal(t, "post-rotation-value", plaintext)
}

func TestFieldCipher_UnknownKeyVersion(t *testing.T) {
	cipher := NewFieldCipher(newTestKeyset(t, 1), cryptoDomain.AESGCM, NewAEADManager())

	envelope, err := cipher.EncryptField("apiKey", "value")
	require.NoError(t, err)

	envelope.KeyVersion = 9

	_, err = cipher.DecryptField("apiKey", envelope)
	require.Error(t, err)
	assert.ErrorIs(t, err, cryptoDomain.ErrUnknownKeyVersion)

	// Unknown version is a deployment fault, not bad input.
	assert.NotErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestFieldCipher_WrongKeyMaterial(t *testing.T) {
	cipherA := NewFieldCipher(newTestKeyset(t, 1), cryptoDomain.AESGCM, NewAEADManager())
	cipherB := NewFieldCipher(newTestKeyset(t, 7), cryptoDomain.AESGCM, NewAEADManager())

	envelope, err := cipherA.EncryptField("apiKey", "value")
	require.NoError(t, err)

	// Same version number, different material.
	envelope.KeyVersion = 7
	_, err = cipherB.DecryptField("apiKey", envelope)
	require.Error(t, err)
	assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
}

func TestAEADManager_CreateCipher(t *testing.T) {
	manager := NewAEADManager()
	key := make([]byte, cryptoDomain.KeySize)

	t.Run("AESGCM", func(t *testing.T) {
		aead, err := manager.CreateCipher(key, cryptoDomain.AESGCM)
		require.NoError(t, err)
		assert.IsType(t, &AESGCMCipher{}, aead)
	})

	t.Run("ChaCha20", func(t *testing.T) {
		aead, err := manager.CreateCipher(key, cryptoDomain.ChaCha20)
		require.NoError(t, err)
		assert.IsType(t, &ChaCha20Poly1305Cipher{}, aead)
	})

	t.Run("Error_InvalidKeySize", func(t *testing.T) {
		_, err := manager.CreateCipher(make([]byte, 16), cryptoDomain.AESGCM)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})

	t.Run("Error_UnsupportedAlgorithm", func(t *testing.T) {
		_, err := manager.CreateCipher(key, cryptoDomain.Algorithm("rot13"))
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedAlgorithm)
	})
}

func TestAEAD_NonceUniqueness(t *testing.T) {
	cipher, err := NewAESGCM(make([]byte, cryptoDomain.KeySize))
	require.NoError(t, err)

	_, nonce1, err := cipher.Encrypt([]byte("same input"), nil)
	require.NoError(t, err)
	_, nonce2, err := cipher.Encrypt([]byte("same input"), nil)
	require.NoError(t, err)

	assert.NotEqual(t, nonce1, nonce2)
}
