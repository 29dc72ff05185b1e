package main

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/oksasatya/portfolio-api/config"
	pginfra "github.com/oksasatya/portfolio-api/internal/infrastructure/postgres"
)

const stepsFlag = "steps"

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the embedded schema migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigration(cmd, func(m *migrate.Migrate) error { return m.Up() })
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Long:  "Roll back the given number of migrations, or all of them with --steps 0.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			steps, err := cmd.Flags().GetInt(stepsFlag)
			if err != nil {
				return err
			}
			if steps < 0 {
				return fmt.Errorf("--%s must not be negative", stepsFlag)
			}
			return runMigration(cmd, func(m *migrate.Migrate) error {
				if steps == 0 {
					return m.Down()
				}
				return m.Steps(-steps)
			})
		},
	}
	down.Flags().Int(stepsFlag, 1, "number of migrations to roll back (0 = all)")

	cmd.AddCommand(up, down)
	return cmd
}

func runMigration(cmd *cobra.Command, apply func(*migrate.Migrate) error) error {
	cfg := config.Load()
	m, err := pginfra.NewMigrator(cfg.PostgresDSN())
	if err != nil {
		return fmt.Errorf("open migrator: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	err = apply(m)
	if errors.Is(err, migrate.ErrNoChange) {
		cmd.Println("no change")
		return nil
	}
	if err != nil {
		return err
	}
	version, dirty, verr := m.Version()
	switch {
	case errors.Is(verr, migrate.ErrNilVersion):
		cmd.Println("database is at the empty schema")
	case verr != nil:
		return verr
	default:
		cmd.Printf("database at version %d (dirty=%t)\n", version, dirty)
	}
	return nil
}
