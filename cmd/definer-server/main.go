package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/definer/internal/bootstrap"
	"github.com/at-ishikawa/definer/internal/config"
	"github.com/at-ishikawa/definer/internal/database"
	"github.com/at-ishikawa/definer/internal/dictionary"
	"github.com/at-ishikawa/definer/internal/server"
	"github.com/at-ishikawa/definer/schemas"
)

var (
	configFile string
	debugMode  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "definer-server",
		Short:         "Definer slash command and RPC server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	logger := bootstrap.NewLogger(cfg.Log, debugMode, os.Stderr)
	slog.SetDefault(logger)
	app := bootstrap.New(bootstrap.WithLogger(logger))

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	app.AddShutdownHook("close database", func(context.Context) error {
		return db.Close()
	})

	executor := dictionary.NewExecutor(dictionary.NewDBRepository(db, cfg.Database.Table), logger)
	srv := newHTTPServer(cfg.Server, server.NewMux(cfg.Server, executor, logger))
	app.AddShutdownHook("stop http server", func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	})

	return app.Run(ctx, func(ctx context.Context) error {
		logger.Info("starting server",
			"addr", srv.Addr,
			"slash_command_path", cfg.Server.SlashCommandPath,
			"procedure", server.DictionaryServiceExecuteProcedure)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func openDatabase(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	if err := database.WaitReady(ctx, db, cfg.Database.ConnectAttempts); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database.WaitReady() > %w", err)
	}
	if cfg.Database.AutoMigrate {
		result, err := database.Migrate(ctx, db, schemas.Migrations, cfg.Database.Table)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("database.Migrate() > %w", err)
		}
		slog.Default().Info("database migrated", "applied", result.Applied, "skipped", len(result.Skipped))
	}
	return db, nil
}

func newHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: time.Duration(cfg.ReadHeaderTimeoutSeconds) * time.Second,
	}
}
