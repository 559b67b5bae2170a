package api

import (
	"context"
	"net/http"

	"github.com/ecogoals/ecogoals/internal/models"
)

// Register creates an account and returns the issued token and profile.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var auth models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/users", req, &auth); err != nil {
		return models.AuthResponse{}, err
	}
	return auth, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var auth models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/users/login", req, &auth); err != nil {
		return models.AuthResponse{}, err
	}
	return auth, nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// UpdateProfile applies a partial profile update and returns the new record.
func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/users/profile", update, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
