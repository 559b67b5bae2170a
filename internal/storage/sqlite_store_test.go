package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ecogoals/ecogoals/internal/constants"
	"github.com/ecogoals/ecogoals/internal/models"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() returned unexpected error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSQLiteInitSeedsDefaultSettings(t *testing.T) {
	store := setupSQLiteStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() returned unexpected error: %v", err)
	}
	if settings.APIURL != constants.DefaultAPIURL {
		t.Errorf("APIURL = %q, want %q", settings.APIURL, constants.DefaultAPIURL)
	}
	if settings.Timezone != constants.DefaultTimezone {
		t.Errorf("Timezone = %q, want %q", settings.Timezone, constants.DefaultTimezone)
	}
}

func TestSQLiteSaveSettingsOverwrites(t *testing.T) {
	store := setupSQLiteStore(t)

	want := models.Settings{APIURL: "https://api.example.com/api", Timezone: "Pacific/Auckland"}
	if err := store.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings() returned unexpected error: %v", err)
	}

	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() returned unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("GetSettings() = %+v, want %+v", got, want)
	}
}

func TestSQLiteUserLifecycle(t *testing.T) {
	store := setupSQLiteStore(t)

	if _, err := store.GetUser(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUser() on empty cache error = %v, want ErrNotFound", err)
	}

	user := models.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}
	if err := store.SaveUser(user); err != nil {
		t.Fatalf("SaveUser() returned unexpected error: %v", err)
	}

	got, err := store.GetUser()
	if err != nil {
		t.Fatalf("GetUser() returned unexpected error: %v", err)
	}
	if got != user {
		t.Errorf("GetUser() = %+v, want %+v", got, user)
	}

	// Saving a different user replaces the previous one.
	replacement := models.User{ID: "u2", Name: "Grace", Email: "grace@example.com"}
	if err := store.SaveUser(replacement); err != nil {
		t.Fatalf("SaveUser() returned unexpected error: %v", err)
	}
	got, err = store.GetUser()
	if err != nil {
		t.Fatalf("GetUser() returned unexpected error: %v", err)
	}
	if got.ID != "u2" {
		t.Errorf("GetUser().ID = %q, want %q", got.ID, "u2")
	}

	if err := store.ClearUser(); err != nil {
		t.Fatalf("ClearUser() returned unexpected error: %v", err)
	}
	if _, err := store.GetUser(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUser() after ClearUser() error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteHabitRoundTrip(t *testing.T) {
	store := setupSQLiteStore(t)

	habit := models.Habit{
		ID:             "h1",
		Name:           "Cycle to work",
		Description:    "Skip the car",
		Color:          "#22c55e",
		Streak:         3,
		CompletedDates: []string{"2024-01-01", "2024-01-02", "2024-01-03"},
	}
	if err := store.SaveHabit(habit); err != nil {
		t.Fatalf("SaveHabit() returned unexpected error: %v", err)
	}

	got, err := store.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit() returned unexpected error: %v", err)
	}
	if got.Name != habit.Name || got.Streak != habit.Streak {
		t.Errorf("GetHabit() = %+v, want %+v", got, habit)
	}
	if len(got.CompletedDates) != 3 || got.CompletedDates[2] != "2024-01-03" {
		t.Errorf("CompletedDates = %v, want %v", got.CompletedDates, habit.CompletedDates)
	}

	// Upsert updates in place.
	habit.Streak = 4
	habit.CompletedDates = append(habit.CompletedDates, "2024-01-04")
	if err := store.SaveHabit(habit); err != nil {
		t.Fatalf("SaveHabit() returned unexpected error: %v", err)
	}
	got, err = store.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit() returned unexpected error: %v", err)
	}
	if got.Streak != 4 || len(got.CompletedDates) != 4 {
		t.Errorf("after upsert got streak %d with %d dates, want 4 and 4", got.Streak, len(got.CompletedDates))
	}
}

func TestSQLiteSaveHabitsReplacesAll(t *testing.T) {
	store := setupSQLiteStore(t)

	if err := store.SaveHabit(models.Habit{ID: "stale", Name: "Old habit"}); err != nil {
		t.Fatalf("SaveHabit() returned unexpected error: %v", err)
	}

	fresh := []models.Habit{
		{ID: "h2", Name: "Recycle"},
		{ID: "h1", Name: "Compost"},
	}
	if err := store.SaveHabits(fresh); err != nil {
		t.Fatalf("SaveHabits() returned unexpected error: %v", err)
	}

	all, err := store.GetAllHabits()
	if err != nil {
		t.Fatalf("GetAllHabits() returned unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("GetAllHabits() returned %d habits, want 2", len(all))
	}
	if all[0].Name != "Compost" || all[1].Name != "Recycle" {
		t.Errorf("GetAllHabits() order = [%s, %s], want sorted by name", all[0].Name, all[1].Name)
	}
	if _, err := store.GetHabit("stale"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetHabit(stale) error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteDeleteHabit(t *testing.T) {
	store := setupSQLiteStore(t)

	if err := store.SaveHabit(models.Habit{ID: "h1", Name: "Recycle"}); err != nil {
		t.Fatalf("SaveHabit() returned unexpected error: %v", err)
	}
	if err := store.DeleteHabit("h1"); err != nil {
		t.Fatalf("DeleteHabit() returned unexpected error: %v", err)
	}
	if err := store.DeleteHabit("h1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteHabit() on missing habit error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteTaskOrdering(t *testing.T) {
	store := setupSQLiteStore(t)

	tasks := []models.Task{
		{ID: "t3", Title: "Third", Status: constants.TaskStatusTodo, Order: 1},
		{ID: "t1", Title: "First", Status: constants.TaskStatusTodo, Order: 0},
		{ID: "t2", Title: "Done", Status: constants.TaskStatusDone, Order: 0},
	}
	if err := store.SaveTasks(tasks); err != nil {
		t.Fatalf("SaveTasks() returned unexpected error: %v", err)
	}

	got, err := store.GetAllTasks()
	if err != nil {
		t.Fatalf("GetAllTasks() returned unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("GetAllTasks() returned %d tasks, want 3", len(got))
	}
	// Ordered by status then sort_order.
	if got[0].ID != "t2" || got[1].ID != "t1" || got[2].ID != "t3" {
		t.Errorf("GetAllTasks() order = [%s %s %s], want [t2 t1 t3]", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestSQLiteLoadValidatesVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() returned unexpected error: %v", err)
	}
	store.Close()

	reopened := NewSQLiteStore(dbPath)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	defer reopened.Close()

	if _, err := reopened.GetSettings(); err != nil {
		t.Errorf("GetSettings() after reopen returned unexpected error: %v", err)
	}
}
