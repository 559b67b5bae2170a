package settings

import (
	"fmt"
	"net/url"
	"time"

	"github.com/ecogoals/ecogoals/internal/cli"
	"github.com/ecogoals/ecogoals/internal/keyring"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	APIURL   *string `name:"api-url" help:"Backend base URL."`
	Timezone *string `help:"IANA timezone for day boundaries, or 'Local'."`

	ConnectionString *string `help:"Store a PostgreSQL connection string in the OS keyring."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  API URL:  %s\n", settings.APIURL)
		fmt.Printf("  Timezone: %s\n", settings.Timezone)
		if keyring.IsAvailable() {
			if _, err := keyring.GetConnectionString(); err == nil {
				fmt.Println("  Connection string: stored in OS keyring")
			}
		}
		return nil
	}

	updated := false
	if c.APIURL != nil {
		u, err := url.Parse(*c.APIURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid API URL %q", *c.APIURL)
		}
		settings.APIURL = *c.APIURL
		updated = true
	}
	if c.Timezone != nil {
		if *c.Timezone != "Local" {
			if _, err := time.LoadLocation(*c.Timezone); err != nil {
				return fmt.Errorf("unknown timezone %q: %w", *c.Timezone, err)
			}
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.ConnectionString != nil {
		if err := keyring.SetConnectionString(*c.ConnectionString); err != nil {
			return fmt.Errorf("failed to store connection string: %w", err)
		}
		fmt.Println("Connection string stored in OS keyring.")
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else if c.ConnectionString == nil {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
