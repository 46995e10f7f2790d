package app

import (
	"fmt"

	workspacesHTTP "github.com/allisson/workspaces/internal/workspaces/http"
	workspacesRepository "github.com/allisson/workspaces/internal/workspaces/repository"
	workspacesUseCase "github.com/allisson/workspaces/internal/workspaces/usecase"
)

// WorkspaceRepository returns the workspace repository for the configured
// database driver.
func (c *Container) WorkspaceRepository() (workspacesUseCase.WorkspaceRepository, error) {
	c.workspaceRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["workspaceRepo"] = fmt.Errorf("failed to get database for workspace repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.workspaceRepo = workspacesRepository.NewMySQLWorkspaceRepository(db)
		case "postgres":
			c.workspaceRepo = workspacesRepository.NewPostgreSQLWorkspaceRepository(db)
		default:
			c.initErrors["workspaceRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["workspaceRepo"]; exists {
		return nil, err
	}
	return c.workspaceRepo, nil
}

// MemberRepository returns the workspace membership repository for the
// configured database driver.
func (c *Container) MemberRepository() (workspacesUseCase.MemberRepository, error) {
	c.memberRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["memberRepo"] = fmt.Errorf("failed to get database for member repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.memberRepo = workspacesRepository.NewMySQLMemberRepository(db)
		case "postgres":
			c.memberRepo = workspacesRepository.NewPostgreSQLMemberRepository(db)
		default:
			c.initErrors["memberRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["memberRepo"]; exists {
		return nil, err
	}
	return c.memberRepo, nil
}

// WorkspaceUseCase returns the workspace use case, instrumented with business
// metrics.
func (c *Container) WorkspaceUseCase() (workspacesUseCase.WorkspaceUseCase, error) {
	c.workspaceUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["workspaceUseCase"] = fmt.Errorf("failed to get tx manager for workspace use case: %w", err)
			return
		}

		workspaceRepo, err := c.WorkspaceRepository()
		if err != nil {
			c.initErrors["workspaceUseCase"] = fmt.Errorf("failed to get workspace repository for workspace use case: %w", err)
			return
		}

		memberRepo, err := c.MemberRepository()
		if err != nil {
			c.initErrors["workspaceUseCase"] = fmt.Errorf("failed to get member repository for workspace use case: %w", err)
			return
		}

		resolver, err := c.OwnershipResolver()
		if err != nil {
			c.initErrors["workspaceUseCase"] = fmt.Errorf("failed to get ownership resolver for workspace use case: %w", err)
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["workspaceUseCase"] = fmt.Errorf("failed to get business metrics for workspace use case: %w", err)
			return
		}

		useCase := workspacesUseCase.NewWorkspaceUseCase(txManager, workspaceRepo, memberRepo, resolver)
		c.workspaceUseCase = workspacesUseCase.NewWorkspaceUseCaseWithMetrics(useCase, businessMetrics)
	})
	if err, exists := c.initErrors["workspaceUseCase"]; exists {
		return nil, err
	}
	return c.workspaceUseCase, nil
}

// WorkspaceHandler returns the workspace HTTP handler.
func (c *Container) WorkspaceHandler() (*workspacesHTTP.WorkspaceHandler, error) {
	useCase, err := c.WorkspaceUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace use case for workspace handler: %w", err)
	}
	return workspacesHTTP.NewWorkspaceHandler(useCase, c.Logger()), nil
}
