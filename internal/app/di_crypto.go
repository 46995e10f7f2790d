package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/allisson/workspaces/internal/crypto/domain"
	cryptoService "github.com/allisson/workspaces/internal/crypto/service"
)

// Keyset returns the credential encryption keyset loaded from the environment.
// When a KMS provider is configured, each key entry is treated as KMS-wrapped
// ciphertext and unwrapped before use.
func (c *Container) Keyset() (*cryptoDomain.Keyset, error) {
	c.keysetInit.Do(func() {
		ctx := context.Background()

		var unwrap cryptoDomain.KMSKeeper
		if c.config.KMSProvider != "" {
			keeper, err := cryptoService.NewKMSService().OpenKeeper(ctx, c.config.KMSKeyURI)
			if err != nil {
				c.initErrors["keyset"] = fmt.Errorf("failed to open KMS keeper: %w", err)
				return
			}
			defer keeper.Close()
			unwrap = keeper
		}

		keyset, err := cryptoDomain.LoadKeysetFromEnv(ctx, unwrap)
		if err != nil {
			c.initErrors["keyset"] = fmt.Errorf("failed to load credential keyset: %w", err)
			return
		}
		c.keyset = keyset
	})
	if err, exists := c.initErrors["keyset"]; exists {
		return nil, err
	}
	return c.keyset, nil
}

// FieldCipher returns the field cipher used for credential encryption.
func (c *Container) FieldCipher() (cryptoService.FieldCipher, error) {
	c.fieldCipherInit.Do(func() {
		keyset, err := c.Keyset()
		if err != nil {
			c.initErrors["fieldCipher"] = fmt.Errorf("failed to get keyset for field cipher: %w", err)
			return
		}

		var algorithm cryptoDomain.Algorithm
		switch c.config.CredentialCipher {
		case string(cryptoDomain.AESGCM):
			algorithm = cryptoDomain.AESGCM
		case string(cryptoDomain.ChaCha20):
			algorithm = cryptoDomain.ChaCha20
		default:
			c.initErrors["fieldCipher"] = fmt.Errorf(
				"unsupported credential cipher: %s", c.config.CredentialCipher)
			return
		}

		c.fieldCipher = cryptoService.NewFieldCipher(keyset, algorithm, cryptoService.NewAEADManager())
	})
	if err, exists := c.initErrors["fieldCipher"]; exists {
		return nil, err
	}
	return c.fieldCipher, nil
}
