package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	cryptoDomain "github.com/allisson/workspaces/internal/crypto/domain"
	cryptoService "github.com/allisson/workspaces/internal/crypto/service"
)

// RunCreateCredentialKey generates a cryptographically secure 32-byte
// credential encryption key and prints the environment entries to configure
// it. Key material is zeroed from memory after encoding.
//
// When a KMS provider and key URI are given, the key is wrapped with KMS
// before output, so plaintext key material never appears in the environment.
// Without KMS the key is printed as plaintext base64, which is only
// acceptable for development and test setups.
//
// Output format:
//   - CREDENTIAL_KEYS="<version>:<base64-key-or-kms-ciphertext>"
//   - CREDENTIAL_ACTIVE_KEY_VERSION="<version>"
//
// When rotating, append the new entry to the existing CREDENTIAL_KEYS list
// and bump CREDENTIAL_ACTIVE_KEY_VERSION; old versions must stay listed so
// previously written envelopes keep decrypting.
func RunCreateCredentialKey(ctx context.Context, version uint, kmsProvider, kmsKeyURI string) error {
	if (kmsProvider == "") != (kmsKeyURI == "") {
		return fmt.Errorf("--kms-provider and --kms-key-uri must be set together")
	}

	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate credential key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	output := key

	if kmsProvider != "" {
		keeperInterface, err := cryptoService.NewKMSService().OpenKeeper(ctx, kmsKeyURI)
		if err != nil {
			return fmt.Errorf("failed to open KMS keeper: %w", err)
		}
		defer func() {
			if closeErr := keeperInterface.Close(); closeErr != nil {
				fmt.Printf("Warning: failed to close KMS keeper: %v\n", closeErr)
			}
		}()

		keeper, ok := keeperInterface.(interface {
			Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
		})
		if !ok {
			return fmt.Errorf("KMS keeper does not support encryption")
		}

		ciphertext, err := keeper.Encrypt(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to wrap credential key with KMS: %w", err)
		}
		output = ciphertext

		fmt.Println("# KMS Mode: credential key wrapped with KMS")
		fmt.Printf("# KMS Provider: %s\n", kmsProvider)
		fmt.Println()
		fmt.Printf("KMS_PROVIDER=%q\n", kmsProvider)
		fmt.Printf("KMS_KEY_URI=%q\n", kmsKeyURI)
	} else {
		fmt.Println("# Plaintext Mode: key printed as base64 (development/test only)")
		fmt.Println()
	}

	encodedKey := base64.StdEncoding.EncodeToString(output)

	fmt.Printf("CREDENTIAL_KEYS=%q\n", fmt.Sprintf("%d:%s", version, encodedKey))
	fmt.Printf("CREDENTIAL_ACTIVE_KEY_VERSION=%q\n", fmt.Sprintf("%d", version))

	return nil
}
