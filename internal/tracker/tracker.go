// Package tracker coordinates the remote habit API with the local cache.
// Writes go to the server first with an optimistic local projection; the
// cache is only updated once the server confirms, so a failed request
// leaves the last known-good state intact.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecogoals/ecogoals/internal/api"
	"github.com/ecogoals/ecogoals/internal/constants"
	"github.com/ecogoals/ecogoals/internal/models"
	"github.com/ecogoals/ecogoals/internal/storage"
	"github.com/ecogoals/ecogoals/internal/streak"
)

type Tracker struct {
	client *api.Client
	store  storage.Provider
	loc    *time.Location
}

func New(client *api.Client, store storage.Provider, loc *time.Location) *Tracker {
	if loc == nil {
		loc = time.Local
	}
	return &Tracker{client: client, store: store, loc: loc}
}

// Location returns the timezone used for day boundaries.
func (t *Tracker) Location() *time.Location {
	return t.loc
}

// Today returns the current day key in the configured timezone.
func (t *Tracker) Today() string {
	return streak.DayKey(time.Now(), t.loc)
}

// reconcile normalizes a habit's completion history and recomputes its
// streak locally. Server-reported streaks are advisory; the completion
// dates are the source of truth.
func (t *Tracker) reconcile(h models.Habit) models.Habit {
	h.CompletedDates = streak.Normalize(h.CompletedDates, t.loc)
	h.Streak = streak.Compute(h.CompletedDates, t.Today(), t.loc)
	return h
}

// Refresh fetches all habits from the server, reconciles them, and replaces
// the cached set.
func (t *Tracker) Refresh(ctx context.Context) ([]models.Habit, error) {
	habits, err := t.client.ListHabits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch habits: %w", err)
	}

	for i := range habits {
		habits[i] = t.reconcile(habits[i])
	}

	if err := t.store.SaveHabits(habits); err != nil {
		return nil, fmt.Errorf("failed to cache habits: %w", err)
	}

	return habits, nil
}

// Habits returns the cached habit set, falling back to a server refresh when
// the cache is empty.
func (t *Tracker) Habits(ctx context.Context) ([]models.Habit, error) {
	habits, err := t.store.GetAllHabits()
	if err != nil {
		return nil, err
	}
	if len(habits) == 0 {
		return t.Refresh(ctx)
	}
	// A cached streak was computed relative to the day it was saved, so it
	// goes stale at midnight. Recompute against today before returning.
	for i := range habits {
		habits[i] = t.reconcile(habits[i])
	}
	return habits, nil
}

// Habit returns a single habit, preferring the cache.
func (t *Tracker) Habit(ctx context.Context, id string) (models.Habit, error) {
	h, err := t.store.GetHabit(id)
	if err == nil {
		return t.reconcile(h), nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.Habit{}, err
	}

	h, err = t.client.GetHabit(ctx, id)
	if err != nil {
		return models.Habit{}, err
	}
	h = t.reconcile(h)
	if err := t.store.SaveHabit(h); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

// ToggleToday flips today's completion for a habit. See Toggle.
func (t *Tracker) ToggleToday(ctx context.Context, id string) (models.Habit, error) {
	return t.Toggle(ctx, id, t.Today())
}

// Toggle flips the completion entry for the given day. The new completion
// set and streak are computed locally, pushed to the server, and cached only
// on success. On failure the cached habit is returned unchanged alongside
// the error so callers can show the last known-good state.
func (t *Tracker) Toggle(ctx context.Context, id, day string) (models.Habit, error) {
	habit, err := t.Habit(ctx, id)
	if err != nil {
		return models.Habit{}, err
	}

	target, err := streak.NormalizeDayKey(day, t.loc)
	if err != nil {
		return habit, fmt.Errorf("invalid date %q: %w", day, err)
	}

	dates := streak.Toggle(habit.CompletedDates, target, t.loc)
	newStreak := streak.Compute(dates, t.Today(), t.loc)

	updated, err := t.client.UpdateHabit(ctx, id, models.HabitUpdate{
		CompletedDates: &dates,
		Streak:         &newStreak,
	})
	if err != nil {
		return habit, fmt.Errorf("failed to save completion: %w", err)
	}

	updated = t.reconcile(updated)
	if err := t.store.SaveHabit(updated); err != nil {
		return updated, err
	}
	return updated, nil
}

func (t *Tracker) CreateHabit(ctx context.Context, req api.CreateHabitRequest) (models.Habit, error) {
	habit, err := t.client.CreateHabit(ctx, req)
	if err != nil {
		return models.Habit{}, err
	}

	habit = t.reconcile(habit)
	if err := t.store.SaveHabit(habit); err != nil {
		return habit, err
	}
	return habit, nil
}

func (t *Tracker) EditHabit(ctx context.Context, id string, update models.HabitUpdate) (models.Habit, error) {
	habit, err := t.client.UpdateHabit(ctx, id, update)
	if err != nil {
		return models.Habit{}, err
	}

	habit = t.reconcile(habit)
	if err := t.store.SaveHabit(habit); err != nil {
		return habit, err
	}
	return habit, nil
}

func (t *Tracker) DeleteHabit(ctx context.Context, id string) error {
	if err := t.client.DeleteHabit(ctx, id); err != nil {
		return err
	}
	if err := t.store.DeleteHabit(id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return nil
}

// History reports completion for the trailing window ending today.
func (t *Tracker) History(habit models.Habit, days int) []bool {
	return streak.History(habit.CompletedDates, t.Today(), days, t.loc)
}

// Tasks fetches the task board from the server and refreshes the cache,
// falling back to cached tasks when the server is unreachable.
func (t *Tracker) Tasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := t.client.ListTasks(ctx)
	if err != nil {
		cached, cacheErr := t.store.GetAllTasks()
		if cacheErr != nil || len(cached) == 0 {
			return nil, fmt.Errorf("failed to fetch tasks: %w", err)
		}
		return cached, nil
	}

	if err := t.store.SaveTasks(tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (t *Tracker) CreateTask(ctx context.Context, req api.CreateTaskRequest) (models.Task, error) {
	task, err := t.client.CreateTask(ctx, req)
	if err != nil {
		return models.Task{}, err
	}
	if err := t.store.SaveTask(task); err != nil {
		return task, err
	}
	return task, nil
}

// MoveTask changes a task's board column.
func (t *Tracker) MoveTask(ctx context.Context, id string, status constants.TaskStatus) (models.Task, error) {
	if !models.ValidStatus(status) {
		return models.Task{}, fmt.Errorf("invalid task status %q", status)
	}

	task, err := t.client.UpdateTask(ctx, id, api.TaskUpdate{Status: &status})
	if err != nil {
		return models.Task{}, err
	}
	if err := t.store.SaveTask(task); err != nil {
		return task, err
	}
	return task, nil
}

func (t *Tracker) DeleteTask(ctx context.Context, id string) error {
	if err := t.client.DeleteTask(ctx, id); err != nil {
		return err
	}
	if err := t.store.DeleteTask(id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return nil
}

// Progress fetches the aggregate stats from the server.
func (t *Tracker) Progress(ctx context.Context) (models.Progress, error) {
	return t.client.Progress(ctx)
}

// Motivation requests an encouragement message based on the current habits.
func (t *Tracker) Motivation(ctx context.Context) (string, error) {
	habits, err := t.Habits(ctx)
	if err != nil {
		return "", err
	}
	return t.client.Motivation(ctx, habits)
}
