package main

import (
	"go-portfolio-backend/pkg/database"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var downSteps int

func init() { //nolint: gochecknoinits
	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 1, "Number of migrations to roll back")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}

var (
	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the database schema",
	}

	migrateUpCmd = &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withMigrator(func(m *database.Migrator) error {
				return m.Up()
			})
		},
	}

	migrateDownCmd = &cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withMigrator(func(m *database.Migrator) error {
				return m.Down(downSteps)
			})
		},
	}
)

func withMigrator(fn func(*database.Migrator) error) error {
	m, err := database.NewMigrator(cfg.DBUrl)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := fn(m); err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("schema version")
	return nil
}
