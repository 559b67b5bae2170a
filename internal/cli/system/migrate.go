package system

import (
	"fmt"

	"github.com/ecogoals/ecogoals/internal/cli"
	"github.com/ecogoals/ecogoals/internal/migration"
	"github.com/ecogoals/ecogoals/internal/storage"
	"github.com/ecogoals/ecogoals/migrations"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		return fmt.Errorf("migrate only applies to a SQLite cache; other backends migrate on init")
	}

	runner := migration.NewRunner(sqliteStore.GetDB(), migrations.FS)
	applied, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return err
	}

	if applied == 0 {
		fmt.Println("Cache schema is up to date.")
	} else {
		fmt.Printf("Applied %d migration(s).\n", applied)
	}
	return nil
}
