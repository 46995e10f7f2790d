package app

import (
	"fmt"

	authzRepository "github.com/allisson/workspaces/internal/authz/repository"
	credentialsHTTP "github.com/allisson/workspaces/internal/credentials/http"
	credentialsRepository "github.com/allisson/workspaces/internal/credentials/repository"
	credentialsUseCase "github.com/allisson/workspaces/internal/credentials/usecase"
)

// credentialRepository combines credential persistence with the ownership
// lookup the authorization layer dispatches to for kind=credential.
type credentialRepository interface {
	credentialsUseCase.CredentialRepository
	authzRepository.ResourceLookup
}

// CredentialRepository returns the credential repository for the configured
// database driver.
func (c *Container) CredentialRepository() (credentialRepository, error) {
	c.credentialRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["credentialRepo"] = fmt.Errorf("failed to get database for credential repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.credentialRepo = credentialsRepository.NewMySQLCredentialRepository(db)
		case "postgres":
			c.credentialRepo = credentialsRepository.NewPostgreSQLCredentialRepository(db)
		default:
			c.initErrors["credentialRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["credentialRepo"]; exists {
		return nil, err
	}
	return c.credentialRepo, nil
}

// CredentialUseCase returns the credential use case, instrumented with
// business metrics.
func (c *Container) CredentialUseCase() (credentialsUseCase.CredentialUseCase, error) {
	c.credentialUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["credentialUseCase"] = fmt.Errorf("failed to get tx manager for credential use case: %w", err)
			return
		}

		credentialRepo, err := c.CredentialRepository()
		if err != nil {
			c.initErrors["credentialUseCase"] = fmt.Errorf("failed to get credential repository for credential use case: %w", err)
			return
		}

		resolver, err := c.OwnershipResolver()
		if err != nil {
			c.initErrors["credentialUseCase"] = fmt.Errorf("failed to get ownership resolver for credential use case: %w", err)
			return
		}

		fieldCipher, err := c.FieldCipher()
		if err != nil {
			c.initErrors["credentialUseCase"] = fmt.Errorf("failed to get field cipher for credential use case: %w", err)
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["credentialUseCase"] = fmt.Errorf("failed to get business metrics for credential use case: %w", err)
			return
		}

		useCase := credentialsUseCase.NewCredentialUseCase(
			txManager, credentialRepo, resolver, fieldCipher, c.Logger())
		c.credentialUseCase = credentialsUseCase.NewCredentialUseCaseWithMetrics(useCase, businessMetrics)
	})
	if err, exists := c.initErrors["credentialUseCase"]; exists {
		return nil, err
	}
	return c.credentialUseCase, nil
}

// CredentialHandler returns the credential HTTP handler.
func (c *Container) CredentialHandler() (*credentialsHTTP.CredentialHandler, error) {
	useCase, err := c.CredentialUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential use case for credential handler: %w", err)
	}
	return credentialsHTTP.NewCredentialHandler(useCase, c.Logger()), nil
}
