package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/autohub/internal/cli/output"
	"github.com/leapstack-labs/autohub/internal/enquiry"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply enquiry store migrations",
		Long: `Create or upgrade the enquiry database schema and print the resulting version.

The store is SQLite by default (store.dsn is a file path relative to the
project root) or PostgreSQL when store.driver is postgres.`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContext(cmd)

	store, cleanup, err := cmdCtx.OpenStore(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	return reportMigration(cmdCtx, store)
}

func reportMigration(cmdCtx *CommandContext, store *enquiry.SQLStore) error {
	version, err := store.MigrationVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	r := cmdCtx.Renderer
	out := output.MigrateOutput{
		Driver:  store.Driver(),
		DSN:     cmdCtx.Cfg.Store.DSN,
		Version: version,
	}
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(out)
	}

	r.Success(fmt.Sprintf("Enquiry store is at schema version %d", version))
	r.KeyValue("Driver", out.Driver)
	if out.Driver == enquiry.DriverSQLite {
		r.KeyValue("Database", out.DSN)
	}
	return nil
}
