package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ecogoals/ecogoals/internal/models"
)

// CreateHabitRequest is the POST /habits payload.
type CreateHabitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// ListHabits fetches all habits for the authenticated user.
func (c *Client) ListHabits(ctx context.Context) ([]models.Habit, error) {
	var habits []models.Habit
	if err := c.do(ctx, http.MethodGet, "/habits", nil, &habits); err != nil {
		return nil, err
	}
	return habits, nil
}

// GetHabit fetches a single habit record.
func (c *Client) GetHabit(ctx context.Context, id string) (models.Habit, error) {
	var habit models.Habit
	if err := c.do(ctx, http.MethodGet, "/habits/"+url.PathEscape(id), nil, &habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

// CreateHabit creates a habit; the backend assigns its identifier.
func (c *Client) CreateHabit(ctx context.Context, req CreateHabitRequest) (models.Habit, error) {
	var habit models.Habit
	if err := c.do(ctx, http.MethodPost, "/habits", req, &habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

// UpdateHabit applies a partial update (completion toggle or edit) and
// returns the authoritative record as the backend now holds it.
func (c *Client) UpdateHabit(ctx context.Context, id string, update models.HabitUpdate) (models.Habit, error) {
	var habit models.Habit
	if err := c.do(ctx, http.MethodPut, "/habits/"+url.PathEscape(id), update, &habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

// DeleteHabit removes a habit on the backend.
func (c *Client) DeleteHabit(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/habits/"+url.PathEscape(id), nil, nil)
}

// Progress fetches the progress/engagement summary.
func (c *Client) Progress(ctx context.Context) (models.Progress, error) {
	var progress models.Progress
	if err := c.do(ctx, http.MethodGet, "/progress", nil, &progress); err != nil {
		return models.Progress{}, err
	}
	return progress, nil
}

// motivationRequest is the POST /ai/motivation payload.
type motivationRequest struct {
	Habits []models.Habit `json:"habits"`
}

// motivationResponse is the POST /ai/motivation result.
type motivationResponse struct {
	Message string `json:"message"`
}

// Motivation asks the backend's assistant for an encouragement message based
// on the current habit list.
func (c *Client) Motivation(ctx context.Context, habits []models.Habit) (string, error) {
	var resp motivationResponse
	if err := c.do(ctx, http.MethodPost, "/ai/motivation", motivationRequest{Habits: habits}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
