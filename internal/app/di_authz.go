package app

import (
	"fmt"

	authzRepository "github.com/allisson/workspaces/internal/authz/repository"
	authzUsecase "github.com/allisson/workspaces/internal/authz/usecase"
)

// ResourceRepository returns the composite resource lookup used by ownership
// checks, dispatching by resource kind to the task and credential repositories.
func (c *Container) ResourceRepository() (authzUsecase.ResourceRepository, error) {
	c.resourceRepoInit.Do(func() {
		taskRepo, err := c.TaskRepository()
		if err != nil {
			c.initErrors["resourceRepo"] = fmt.Errorf("failed to get task repository for resource lookups: %w", err)
			return
		}

		credentialRepo, err := c.CredentialRepository()
		if err != nil {
			c.initErrors["resourceRepo"] = fmt.Errorf("failed to get credential repository for resource lookups: %w", err)
			return
		}

		c.resourceRepo = authzRepository.NewCompositeResourceRepository(taskRepo, credentialRepo)
	})
	if err, exists := c.initErrors["resourceRepo"]; exists {
		return nil, err
	}
	return c.resourceRepo, nil
}

// OwnershipResolver returns the ownership resolver, instrumented with business
// metrics when metrics are enabled.
func (c *Container) OwnershipResolver() (authzUsecase.OwnershipResolver, error) {
	c.resolverInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["resolver"] = fmt.Errorf("failed to get tx manager for ownership resolver: %w", err)
			return
		}

		resourceRepo, err := c.ResourceRepository()
		if err != nil {
			c.initErrors["resolver"] = fmt.Errorf("failed to get resource repository for ownership resolver: %w", err)
			return
		}

		workspaceRepo, err := c.WorkspaceRepository()
		if err != nil {
			c.initErrors["resolver"] = fmt.Errorf("failed to get workspace repository for ownership resolver: %w", err)
			return
		}

		memberRepo, err := c.MemberRepository()
		if err != nil {
			c.initErrors["resolver"] = fmt.Errorf("failed to get member repository for ownership resolver: %w", err)
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["resolver"] = fmt.Errorf("failed to get business metrics for ownership resolver: %w", err)
			return
		}

		resolver := authzUsecase.NewOwnershipResolver(txManager, resourceRepo, workspaceRepo, memberRepo)
		c.resolver = authzUsecase.NewOwnershipResolverWithMetrics(resolver, businessMetrics)
	})
	if err, exists := c.initErrors["resolver"]; exists {
		return nil, err
	}
	return c.resolver, nil
}
