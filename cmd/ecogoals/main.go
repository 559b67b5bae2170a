package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/ecogoals/ecogoals/internal/api"
	"github.com/ecogoals/ecogoals/internal/cli"
	"github.com/ecogoals/ecogoals/internal/cli/settings"
	"github.com/ecogoals/ecogoals/internal/cli/system"
	"github.com/ecogoals/ecogoals/internal/constants"
	"github.com/ecogoals/ecogoals/internal/errors"
	"github.com/ecogoals/ecogoals/internal/keyring"
	"github.com/ecogoals/ecogoals/internal/logger"
	"github.com/ecogoals/ecogoals/internal/storage"
	"github.com/ecogoals/ecogoals/internal/tracker"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Cache path (SQLite .db, flat .json) or PostgreSQL connection string. PostgreSQL credentials must NOT be embedded; use the OS keyring, environment, or .pgpass." env:"ECOGOALS_CONFIG" default:"~/.config/ecogoals/ecogoals.db"`
	APIURL  string `name:"api-url" help:"Override the backend base URL." env:"ECOGOALS_API_URL"`
	Debug   bool   `help:"Enable debug logging."`

	Init     system.InitCmd       `cmd:"" help:"Initialize the local cache."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run cache schema migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Register cli.RegisterCmd      `cmd:"" help:"Create an account and log in."`
	Login    cli.LoginCmd         `cmd:"" help:"Log in to the backend."`
	Logout   cli.LogoutCmd        `cmd:"" help:"Log out and discard the stored session."`
	Whoami   cli.WhoamiCmd        `cmd:"" help:"Show the logged-in account."`
	Profile  cli.ProfileCmd       `cmd:"" help:"Show or update the account profile."`
	Habit    cli.HabitCmd         `cmd:"" help:"Manage habits and completions."`
	Task     cli.TaskCmd          `cmd:"" help:"Manage the task board."`
	Progress cli.ProgressCmd      `cmd:"" help:"Show aggregate progress."`
	Motivate cli.MotivateCmd      `cmd:"" help:"Fetch an encouragement message."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker and task board for sustainable living goals"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":      constants.Version,
			"defaultColor": constants.DefaultHabitColor,
			"historyDays":  fmt.Sprintf("%d", constants.HistoryDays),
		},
	)

	config := expandPath(CLI.Config)

	var store storage.Provider
	var err error

	// A keyring-stored connection string overrides the default cache path.
	// Credentials inside it are fine; the keyring is where they belong.
	if config == expandPath(constants.DefaultConfigPath) {
		if conn, kerr := keyring.GetConnectionString(); kerr == nil && conn != "" {
			store = storage.NewPostgresStore(conn)
		}
	}
	if store == nil {
		store, err = storage.NewProvider(config)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if strings.HasPrefix(config, "postgres") {
			fmt.Fprintf(os.Stderr, "       Store credentials outside the connection string:\n")
			fmt.Fprintf(os.Stderr, "       1. OS keyring:   ecogoals settings --connection-string \"postgresql://user@host:5432/ecogoals\"\n")
			fmt.Fprintf(os.Stderr, "       2. Environment:  PGPASSWORD\n")
			fmt.Fprintf(os.Stderr, "       3. .pgpass file\n")
		}
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(expandPath(constants.DefaultConfigPath)),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	// Load the cache before running the command; init handles its own setup.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" && ctx.Selected().Name != "doctor" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	appCtx := &cli.Context{Store: store}
	appCtx.Location = resolveLocation(store)
	appCtx.Client = api.New(resolveAPIURL(store), "")
	appCtx.Tracker = tracker.New(appCtx.Client, store, appCtx.Location)

	err = ctx.Run(appCtx)
	store.Close()
	if err != nil {
		errors.Fatal(err)
	}
}

// resolveAPIURL prefers the --api-url flag, then the cached setting, then the
// compiled-in default.
func resolveAPIURL(store storage.Provider) string {
	if CLI.APIURL != "" {
		return CLI.APIURL
	}
	if s, err := store.GetSettings(); err == nil && s.APIURL != "" {
		return s.APIURL
	}
	return constants.DefaultAPIURL
}

// resolveLocation loads the configured timezone, falling back to the system
// timezone when unset or invalid.
func resolveLocation(store storage.Provider) *time.Location {
	s, err := store.GetSettings()
	if err != nil || s.Timezone == "" || s.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		logger.Warn("Invalid timezone setting, using system timezone", "timezone", s.Timezone, "error", err)
		return time.Local
	}
	return loc
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
