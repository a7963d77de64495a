package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/definer/internal/config"
	"github.com/at-ishikawa/definer/internal/database"
	"github.com/at-ishikawa/definer/internal/dictionary"
	"github.com/at-ishikawa/definer/schemas"
)

// loadConfig loads the config file and reconfigures the default logger from it.
func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	setupLogger(cfg.Log, debugMode)
	return cfg, nil
}

// openDatabase opens the configured database and applies migrations when auto_migrate is set.
func openDatabase(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if _, err := database.Migrate(ctx, db, schemas.Migrations, cfg.Database.Table); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}
	return db, nil
}

// requestText joins command arguments into the text of one request.
// No arguments means no text, which lists every term.
func requestText(args []string) *string {
	if len(args) == 0 {
		return nil
	}
	text := strings.Join(args, " ")
	return &text
}

func newExecutor(db *sqlx.DB, cfg *config.Config) *dictionary.Executor {
	return dictionary.NewExecutor(dictionary.NewDBRepository(db, cfg.Database.Table), slog.Default())
}
