// Package session holds the current user's identity for the lifetime of a
// command: the bearer token lives in the OS keyring, the profile in the cache
// store. It is set at login/register, cleared at logout, and injected into
// every collaborator that needs it.
package session

import (
	"errors"
	"fmt"

	"github.com/ecogoals/ecogoals/internal/keyring"
	"github.com/ecogoals/ecogoals/internal/models"
)

// ErrNotAuthenticated is returned when no stored token exists. Callers treat
// it as terminal for the current operation and prompt for login rather than
// retrying.
var ErrNotAuthenticated = errors.New("not logged in, run 'ecogoals login' first")

// UserStore is the slice of the cache store the session needs.
type UserStore interface {
	GetUser() (models.User, error)
	SaveUser(models.User) error
	ClearUser() error
}

// Session is the authenticated identity for the current process.
type Session struct {
	Token string
	User  models.User
}

// Load restores the session from the keyring and cache store. Returns
// ErrNotAuthenticated when no token is stored.
func Load(store UserStore) (*Session, error) {
	token, err := keyring.GetToken()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to read token: %w", err)
	}

	sess := &Session{Token: token}

	// A missing cached profile is not fatal; the token alone authenticates
	// and the profile can be refetched from /users/profile.
	if user, err := store.GetUser(); err == nil {
		sess.User = user
	}

	return sess, nil
}

// Begin establishes a session from a login/register exchange: the token goes
// to the keyring, the profile to the cache store.
func Begin(store UserStore, auth models.AuthResponse) (*Session, error) {
	if auth.Token == "" {
		return nil, errors.New("auth response carried no token")
	}

	if err := keyring.SetToken(auth.Token); err != nil {
		return nil, err
	}

	if err := store.SaveUser(auth.User); err != nil {
		return nil, fmt.Errorf("failed to cache user profile: %w", err)
	}

	return &Session{Token: auth.Token, User: auth.User}, nil
}

// End tears the session down: token deleted from the keyring, profile cleared
// from the cache store. A missing token is not an error; logout is idempotent.
func End(store UserStore) error {
	if err := keyring.DeleteToken(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return store.ClearUser()
}
