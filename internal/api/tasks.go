package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ecogoals/ecogoals/internal/constants"
	"github.com/ecogoals/ecogoals/internal/models"
)

// CreateTaskRequest is the POST /tasks payload.
type CreateTaskRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Status      constants.TaskStatus `json:"status"`
	Order       int                  `json:"order"`
}

// TaskUpdate is the PUT /tasks/{id} payload; nil fields are omitted.
type TaskUpdate struct {
	Title       *string               `json:"title,omitempty"`
	Description *string               `json:"description,omitempty"`
	Status      *constants.TaskStatus `json:"status,omitempty"`
	Order       *int                  `json:"order,omitempty"`
}

// ListTasks fetches all task board cards.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task board card.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", req, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// UpdateTask applies a partial update (move, reorder, edit).
func (c *Client) UpdateTask(ctx context.Context, id string, update TaskUpdate) (models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), update, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// DeleteTask removes a task board card.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}
