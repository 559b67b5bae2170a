// Package storage is the client-side cache of server records: the last
// known-good state used for optimistic-toggle rollback and offline viewing.
// The backend API owns the authoritative data.
package storage

import "github.com/ecogoals/ecogoals/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Cached user profile
	GetUser() (models.User, error)
	SaveUser(models.User) error
	ClearUser() error

	// Cached habits
	SaveHabit(models.Habit) error
	SaveHabits([]models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	DeleteHabit(id string) error

	// Cached tasks
	SaveTask(models.Task) error
	SaveTasks([]models.Task) error
	GetAllTasks() ([]models.Task, error)
	DeleteTask(id string) error

	// Utils
	GetConfigPath() string
}
