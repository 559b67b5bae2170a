package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ecogoals/ecogoals/internal/constants"
	"github.com/ecogoals/ecogoals/internal/migration"
	"github.com/ecogoals/ecogoals/internal/models"
	"github.com/ecogoals/ecogoals/migrations"
)

// ErrNotFound is returned when a cached record does not exist.
var ErrNotFound = errors.New("record not found in cache")

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	s.db = db

	runner := migration.NewRunner(s.db, migrations.FS)
	if _, err := runner.ApplyMigrations(nil); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Seed default settings if not present
	if _, err := s.GetSettings(); err != nil {
		defaults := models.Settings{
			APIURL:   constants.DefaultAPIURL,
			Timezone: constants.DefaultTimezone,
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("cache not initialized, run 'ecogoals init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	s.db = db

	runner := migration.NewRunner(s.db, migrations.FS)
	if err := runner.ValidateVersion(); err != nil {
		return err
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	if s.db == nil {
		return models.Settings{}, errors.New("cache not loaded")
	}
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case constants.SettingAPIURL:
			settings.APIURL = value
		case constants.SettingTimezone:
			settings.Timezone = value
		}
		count++
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(constants.SettingAPIURL, settings.APIURL); err != nil {
		return err
	}
	if _, err := stmt.Exec(constants.SettingTimezone, settings.Timezone); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetUser() (models.User, error) {
	row := s.db.QueryRow("SELECT id, name, email, avatar_url FROM account LIMIT 1")

	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.AvatarURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *SQLiteStore) SaveUser(user models.User) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// One account row at a time; a new login replaces the previous identity.
	if _, err := tx.Exec("DELETE FROM account"); err != nil {
		return err
	}
	if _, err := tx.Exec(
		"INSERT INTO account (id, name, email, avatar_url) VALUES (?, ?, ?, ?)",
		user.ID, user.Name, user.Email, user.AvatarURL,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) ClearUser() error {
	_, err := s.db.Exec("DELETE FROM account")
	return err
}

func (s *SQLiteStore) SaveHabit(habit models.Habit) error {
	dates, err := json.Marshal(habit.CompletedDates)
	if err != nil {
		return fmt.Errorf("failed to marshal completed dates: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO habits (id, name, description, color, streak, completed_dates, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			color = excluded.color,
			streak = excluded.streak,
			completed_dates = excluded.completed_dates,
			fetched_at = excluded.fetched_at`,
		habit.ID, habit.Name, habit.Description, habit.Color, habit.Streak,
		string(dates), time.Now().UTC().Format(time.RFC3339))

	return err
}

func (s *SQLiteStore) SaveHabits(habits []models.Habit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Full refresh: the incoming list is the authoritative server state.
	if _, err := tx.Exec("DELETE FROM habits"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO habits (id, name, description, color, streak, completed_dates, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, h := range habits {
		dates, err := json.Marshal(h.CompletedDates)
		if err != nil {
			return fmt.Errorf("failed to marshal completed dates for habit %s: %w", h.ID, err)
		}
		if _, err := stmt.Exec(h.ID, h.Name, h.Description, h.Color, h.Streak, string(dates), now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, name, description, color, streak, completed_dates
		FROM habits WHERE id = ?`, id)
	return scanHabit(row)
}

func (s *SQLiteStore) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT id, name, description, color, streak, completed_dates
		FROM habits ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (s *SQLiteStore) DeleteHabit(id string) error {
	result, err := s.db.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) SaveTask(task models.Task) error {
	_, err := s.db.Exec(`
		INSERT INTO tasks (id, title, description, status, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			status = excluded.status,
			sort_order = excluded.sort_order,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`,
		task.ID, task.Title, task.Description, string(task.Status), task.Order,
		task.CreatedAt, task.UpdatedAt)
	return err
}

func (s *SQLiteStore) SaveTasks(tasks []models.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tasks"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO tasks (id, title, description, status, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range tasks {
		if _, err := stmt.Exec(t.ID, t.Title, t.Description, string(t.Status), t.Order, t.CreatedAt, t.UpdatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetAllTasks() ([]models.Task, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, status, sort_order, created_at, updated_at
		FROM tasks ORDER BY status, sort_order`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		var status string
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &status, &t.Order, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.Status = constants.TaskStatus(status)
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

func (s *SQLiteStore) DeleteTask(id string) error {
	result, err := s.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// GetDB exposes the handle for the doctor command's integrity checks.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanHabit(row scannable) (models.Habit, error) {
	var h models.Habit
	var dates string

	err := row.Scan(&h.ID, &h.Name, &h.Description, &h.Color, &h.Streak, &dates)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, ErrNotFound
		}
		return models.Habit{}, err
	}

	if err := json.Unmarshal([]byte(dates), &h.CompletedDates); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse completed dates for habit %s: %w", h.ID, err)
	}

	return h, nil
}
