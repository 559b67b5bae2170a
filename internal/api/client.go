// Package api is the HTTP client for the EcoGoals backend, the external
// collaborator that owns authoritative habit and task state. It attaches the
// session's bearer token, decodes the backend's {"message": ...} error
// bodies, and defines no retry policy of its own.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecogoals/ecogoals/internal/constants"
	"github.com/ecogoals/ecogoals/internal/logger"
)

// Client talks to one backend instance. It is safe for use from a single
// command invocation; the token is fixed at construction (or via SetToken
// after a login exchange).
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for the given base URL. token may be empty for the
// unauthenticated login/register calls.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout: constants.DefaultRequestTimeoutSec * time.Second,
		},
	}
}

// SetToken replaces the bearer token after a login/register exchange.
func (c *Client) SetToken(token string) {
	c.token = token
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping reports whether the backend is reachable. An authentication failure
// still counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	err := c.do(ctx, http.MethodGet, "/habits", nil, nil)
	if err == nil || errors.Is(err, ErrUnauthorized) {
		return nil
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return nil
	}
	return err
}

// errorBody is the backend's JSON error envelope.
type errorBody struct {
	Message string `json:"message"`
}

// do performs one request. body (if non-nil) is JSON-encoded; out (if
// non-nil) receives the decoded response body.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		logger.Warn("Backend rejected credentials", "method", method, "path", path, "request_id", reqID)
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := decodeErrorMessage(resp.Body)
		logger.Debug("Backend error response", "method", method, "path", path, "status", resp.StatusCode, "message", msg, "request_id", reqID)
		return &StatusError{Code: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("invalid server response: %w", err)
		}
	}

	return nil
}

func decodeErrorMessage(r io.Reader) string {
	var eb errorBody
	if err := json.NewDecoder(r).Decode(&eb); err != nil {
		return ""
	}
	return eb.Message
}
