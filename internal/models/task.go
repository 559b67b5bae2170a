package models

import "github.com/ecogoals/ecogoals/internal/constants"

// Task represents a task board card
type Task struct {
	ID          string               `json:"_id"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Status      constants.TaskStatus `json:"status"`
	Order       int                  `json:"order"`
	CreatedAt   string               `json:"createdAt,omitempty"` // RFC3339 timestamp
	UpdatedAt   string               `json:"updatedAt,omitempty"` // RFC3339 timestamp
}

// ValidStatus reports whether s names a known board column.
func ValidStatus(s constants.TaskStatus) bool {
	switch s {
	case constants.TaskStatusTodo, constants.TaskStatusInProgress, constants.TaskStatusDone:
		return true
	}
	return false
}
