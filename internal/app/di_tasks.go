package app

import (
	"fmt"

	authzRepository "github.com/allisson/workspaces/internal/authz/repository"
	tasksHTTP "github.com/allisson/workspaces/internal/tasks/http"
	tasksRepository "github.com/allisson/workspaces/internal/tasks/repository"
	tasksUseCase "github.com/allisson/workspaces/internal/tasks/usecase"
)

// taskRepository combines task persistence with the ownership lookup the
// authorization layer dispatches to for kind=task.
type taskRepository interface {
	tasksUseCase.TaskRepository
	authzRepository.ResourceLookup
}

// TaskRepository returns the task repository for the configured database driver.
func (c *Container) TaskRepository() (taskRepository, error) {
	c.taskRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["taskRepo"] = fmt.Errorf("failed to get database for task repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.taskRepo = tasksRepository.NewMySQLTaskRepository(db)
		case "postgres":
			c.taskRepo = tasksRepository.NewPostgreSQLTaskRepository(db)
		default:
			c.initErrors["taskRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["taskRepo"]; exists {
		return nil, err
	}
	return c.taskRepo, nil
}

// TaskUseCase returns the task use case, instrumented with business metrics.
func (c *Container) TaskUseCase() (tasksUseCase.TaskUseCase, error) {
	c.taskUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["taskUseCase"] = fmt.Errorf("failed to get tx manager for task use case: %w", err)
			return
		}

		taskRepo, err := c.TaskRepository()
		if err != nil {
			c.initErrors["taskUseCase"] = fmt.Errorf("failed to get task repository for task use case: %w", err)
			return
		}

		resolver, err := c.OwnershipResolver()
		if err != nil {
			c.initErrors["taskUseCase"] = fmt.Errorf("failed to get ownership resolver for task use case: %w", err)
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["taskUseCase"] = fmt.Errorf("failed to get business metrics for task use case: %w", err)
			return
		}

		useCase := tasksUseCase.NewTaskUseCase(txManager, taskRepo, resolver)
		c.taskUseCase = tasksUseCase.NewTaskUseCaseWithMetrics(useCase, businessMetrics)
	})
	if err, exists := c.initErrors["taskUseCase"]; exists {
		return nil, err
	}
	return c.taskUseCase, nil
}

// TaskHandler returns the task HTTP handler.
func (c *Container) TaskHandler() (*tasksHTTP.TaskHandler, error) {
	useCase, err := c.TaskUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get task use case for task handler: %w", err)
	}
	return tasksHTTP.NewTaskHandler(useCase, c.Logger()), nil
}
