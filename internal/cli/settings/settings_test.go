package settings

import (
	"path/filepath"
	"testing"

	"github.com/ecogoals/ecogoals/internal/cli"
	"github.com/ecogoals/ecogoals/internal/storage"
)

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := storage.NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	return &cli.Context{Store: store}
}

func TestSettingsCmd_List(t *testing.T) {
	ctx := setupTestContext(t)

	cmd := &SettingsCmd{List: true}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("settings list failed: %v", err)
	}
}

func TestSettingsCmd_UpdateAPIURL(t *testing.T) {
	ctx := setupTestContext(t)

	apiURL := "https://habits.example.com/api"
	cmd := &SettingsCmd{APIURL: &apiURL}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.APIURL != apiURL {
		t.Errorf("APIURL = %q, want %q", settings.APIURL, apiURL)
	}
}

func TestSettingsCmd_RejectsInvalidAPIURL(t *testing.T) {
	ctx := setupTestContext(t)

	bad := "not a url"
	cmd := &SettingsCmd{APIURL: &bad}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error for invalid API URL")
	}
}

func TestSettingsCmd_UpdateTimezone(t *testing.T) {
	ctx := setupTestContext(t)

	tz := "Pacific/Auckland"
	cmd := &SettingsCmd{Timezone: &tz}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.Timezone != tz {
		t.Errorf("Timezone = %q, want %q", settings.Timezone, tz)
	}
}

func TestSettingsCmd_RejectsUnknownTimezone(t *testing.T) {
	ctx := setupTestContext(t)

	tz := "Mars/Olympus_Mons"
	cmd := &SettingsCmd{Timezone: &tz}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error for unknown timezone")
	}
}
