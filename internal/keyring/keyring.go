package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/ecogoals/ecogoals/internal/constants"
)

var (
	// ErrNotFound is returned when no credential is found in the keyring
	ErrNotFound = errors.New("credential not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetToken retrieves the API bearer token from the OS keyring.
// Returns ErrNotFound if no token is stored (the user is logged out).
func GetToken() (string, error) {
	return get(constants.KeyringTokenUser)
}

// SetToken stores the API bearer token in the OS keyring. It is called once
// per login/register exchange; the token itself is issued and verified by the
// backend.
func SetToken(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	return set(constants.KeyringTokenUser, token)
}

// DeleteToken removes the API bearer token from the OS keyring (logout).
func DeleteToken() error {
	return del(constants.KeyringTokenUser)
}

// GetConnectionString retrieves the PostgreSQL cache connection string from
// the OS keyring. Returns ErrNotFound if none is stored.
func GetConnectionString() (string, error) {
	return get(constants.KeyringConnUser)
}

// SetConnectionString stores the PostgreSQL cache connection string in the
// OS keyring.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return set(constants.KeyringConnUser, connStr)
}

// DeleteConnectionString removes the PostgreSQL cache connection string from
// the OS keyring.
func DeleteConnectionString() error {
	return del(constants.KeyringConnUser)
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	// ErrNotFound means the keyring is reachable but empty; any other error
	// likely indicates the keyring is not available.
	return err == nil || err == keyring.ErrNotFound
}

func get(account string) (string, error) {
	value, err := keyring.Get(constants.AppName, account)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

func set(account, value string) error {
	if err := keyring.Set(constants.AppName, account, value); err != nil {
		return fmt.Errorf("failed to store credential in keyring: %w", err)
	}
	return nil
}

func del(account string) error {
	err := keyring.Delete(constants.AppName, account)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credential from keyring: %w", err)
	}
	return nil
}
