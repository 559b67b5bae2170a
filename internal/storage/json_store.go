package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ecogoals/ecogoals/internal/constants"
	"github.com/ecogoals/ecogoals/internal/models"
)

type jsonStore struct {
	Version  int                     `json:"version"`
	Settings models.Settings         `json:"settings"`
	User     *models.User            `json:"user,omitempty"`
	Habits   map[string]models.Habit `json:"habits"`
	Tasks    map[string]models.Task  `json:"tasks"`
}

type JSONStore struct {
	path  string
	store *jsonStore
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("cache already initialized at %s", s.path)
	}

	s.store = &jsonStore{
		Version: 1,
		Settings: models.Settings{
			APIURL:   constants.DefaultAPIURL,
			Timezone: constants.DefaultTimezone,
		},
		Habits: make(map[string]models.Habit),
		Tasks:  make(map[string]models.Task),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("cache not initialized, run 'ecogoals init' first")
		}
		return fmt.Errorf("failed to read cache: %w", err)
	}

	s.store = &jsonStore{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse cache: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Habits == nil {
		s.store.Habits = make(map[string]models.Habit)
	}
	if s.store.Tasks == nil {
		s.store.Tasks = make(map[string]models.Task)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize cache: %w", err)
	}

	// Write-then-rename so a crash mid-write cannot truncate the cache.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace cache: %w", err)
	}

	return nil
}

func (s *JSONStore) loaded() error {
	if s.store == nil {
		return fmt.Errorf("cache not loaded")
	}
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if err := s.loaded(); err != nil {
		return models.Settings{}, err
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) GetUser() (models.User, error) {
	if err := s.loaded(); err != nil {
		return models.User{}, err
	}
	if s.store.User == nil {
		return models.User{}, ErrNotFound
	}
	return *s.store.User, nil
}

func (s *JSONStore) SaveUser(user models.User) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.User = &user
	return s.save()
}

func (s *JSONStore) ClearUser() error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.User = nil
	return s.save()
}

func (s *JSONStore) SaveHabit(habit models.Habit) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) SaveHabits(habits []models.Habit) error {
	if err := s.loaded(); err != nil {
		return err
	}

	// Full refresh: the incoming list is the authoritative server state.
	s.store.Habits = make(map[string]models.Habit, len(habits))
	for _, h := range habits {
		s.store.Habits[h.ID] = h
	}
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	if err := s.loaded(); err != nil {
		return models.Habit{}, err
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return models.Habit{}, ErrNotFound
	}
	return habit, nil
}

func (s *JSONStore) GetAllHabits() ([]models.Habit, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	habits := make([]models.Habit, 0, len(s.store.Habits))
	for _, h := range s.store.Habits {
		habits = append(habits, h)
	}
	sort.Slice(habits, func(i, j int) bool {
		return habits[i].Name < habits[j].Name
	})

	return habits, nil
}

func (s *JSONStore) DeleteHabit(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}

	if _, ok := s.store.Habits[id]; !ok {
		return ErrNotFound
	}
	delete(s.store.Habits, id)
	return s.save()
}

func (s *JSONStore) SaveTask(task models.Task) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Tasks[task.ID] = task
	return s.save()
}

func (s *JSONStore) SaveTasks(tasks []models.Task) error {
	if err := s.loaded(); err != nil {
		return err
	}

	s.store.Tasks = make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		s.store.Tasks[t.ID] = t
	}
	return s.save()
}

func (s *JSONStore) GetAllTasks() ([]models.Task, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(s.store.Tasks))
	for _, t := range s.store.Tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Status != tasks[j].Status {
			return tasks[i].Status < tasks[j].Status
		}
		return tasks[i].Order < tasks[j].Order
	})

	return tasks, nil
}

func (s *JSONStore) DeleteTask(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}

	if _, ok := s.store.Tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.store.Tasks, id)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
