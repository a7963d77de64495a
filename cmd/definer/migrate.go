package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/definer/internal/database"
	"github.com/at-ishikawa/definer/schemas"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the dictionary table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer func() { _ = db.Close() }()

			if err := database.WaitReady(ctx, db, cfg.Database.ConnectAttempts); err != nil {
				return fmt.Errorf("wait for database: %w", err)
			}

			result, err := database.Migrate(ctx, db, schemas.Migrations, cfg.Database.Table)
			if err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, name := range result.Applied {
				_, _ = fmt.Fprintf(out, "  [APPLY]  %s\n", name)
			}
			for _, name := range result.Skipped {
				_, _ = fmt.Fprintf(out, "  [SKIP]  %s\n", name)
			}
			_, _ = fmt.Fprintf(out, "%d applied, %d already applied\n", len(result.Applied), len(result.Skipped))
			return nil
		},
	}
}
