package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or inspect database schema migrations",
	Long:  "Run the embedded schema migrations against the configured database. Exactly one of --up, --down, --steps, --force or --version is required.",
	RunE:  runMigrate,
}

var (
	migrateUp      bool
	migrateDown    bool
	migrateVersion bool
	migrateSteps   int
	migrateForce   int
)

func init() {
	migrateCmd.Flags().BoolVar(&migrateUp, "up", false, "Apply all pending migrations")
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "Revert all migrations")
	migrateCmd.Flags().BoolVar(&migrateVersion, "version", false, "Print the current schema version")
	migrateCmd.Flags().IntVar(&migrateSteps, "steps", 0, "Apply n migrations (negative reverts)")
	migrateCmd.Flags().IntVar(&migrateForce, "force", 0, "Set the schema version without running migrations")

	migrateCmd.MarkFlagsOneRequired("up", "down", "version", "steps", "force")
	migrateCmd.MarkFlagsMutuallyExclusive("up", "down", "version", "steps", "force")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url is required")
	}

	mg, err := db.NewMigrator(a.cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := mg.Close(); err != nil {
			a.logger.Warn("failed to close migrator", zap.Error(err))
		}
	}()

	flags := cmd.Flags()
	switch {
	case migrateUp:
		err = mg.Up()
	case migrateDown:
		err = mg.Down()
	case flags.Changed("steps"):
		err = mg.Steps(migrateSteps)
	case flags.Changed("force"):
		err = mg.Force(migrateForce)
	}
	if err != nil {
		return err
	}

	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	a.logger.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	fmt.Printf("Schema version: %d", version)
	if dirty {
		fmt.Print(" (dirty)")
	}
	fmt.Println()
	return nil
}
