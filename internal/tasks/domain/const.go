// Package domain defines the core domain models for workspace tasks.
package domain

import "fmt"

// Status is a task's lifecycle state.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// IsValid reports whether the status is a member of the closed enum.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// ParseStatus converts a persisted status name into a Status.
func ParseStatus(name string) (Status, error) {
	status := Status(name)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, name)
	}
	return status, nil
}
