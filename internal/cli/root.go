package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/ecogoals/ecogoals/internal/api"
	"github.com/ecogoals/ecogoals/internal/models"
	"github.com/ecogoals/ecogoals/internal/session"
	"github.com/ecogoals/ecogoals/internal/storage"
	"github.com/ecogoals/ecogoals/internal/tracker"
)

type Context struct {
	Store    storage.Provider
	Client   *api.Client
	Tracker  *tracker.Tracker
	Location *time.Location
}

// RequireAuth loads the stored session and attaches its token to the API
// client. Commands that talk to the backend call this first.
func (c *Context) RequireAuth() (*session.Session, error) {
	sess, err := session.Load(c.Store)
	if err != nil {
		return nil, err
	}
	c.Client.SetToken(sess.Token)
	return sess, nil
}

// ResolveHabit finds a habit by ID or name (case-insensitive). A unique name
// prefix also matches.
func (c *Context) ResolveHabit(ctx context.Context, ref string) (models.Habit, error) {
	habits, err := c.Tracker.Habits(ctx)
	if err != nil {
		return models.Habit{}, err
	}

	lower := strings.ToLower(ref)
	var prefixMatches []models.Habit
	for _, h := range habits {
		if h.ID == ref || strings.ToLower(h.Name) == lower {
			return h, nil
		}
		if strings.HasPrefix(strings.ToLower(h.Name), lower) {
			prefixMatches = append(prefixMatches, h)
		}
	}

	switch len(prefixMatches) {
	case 1:
		return prefixMatches[0], nil
	case 0:
		return models.Habit{}, fmt.Errorf("habit %q not found", ref)
	default:
		names := make([]string, len(prefixMatches))
		for i, h := range prefixMatches {
			names[i] = h.Name
		}
		return models.Habit{}, fmt.Errorf("habit %q is ambiguous: %s", ref, strings.Join(names, ", "))
	}
}

// confirm asks a yes/no question on the terminal.
func confirm(question string) (bool, error) {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(question).Value(&ok),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}
