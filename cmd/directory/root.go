package main

import (
	"context"
	"fmt"

	"github.com/holidayhub/directory/internal/config"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	_ "github.com/lib/pq" // PostgreSQL driver
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "directory",
	Short: "Account and holiday directory service",
	Long: `Keeps user accounts, holidays and the attendance links between them in
PostgreSQL, and serves them over REST, a named-procedure RPC endpoint and an
HTML form adapter.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func loadConfig() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, cfg.NewLogger(), nil
}

// openDatabase opens the shared connection pool and verifies it is reachable.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
