package main

import (
	"github.com/holidayhub/directory/internal/repository"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the directory tables if they do not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := openDatabase(cmd.Context(), cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := repository.CreateSchema(cmd.Context(), db); err != nil {
			return err
		}
		log.Info("schema is up to date")
		return nil
	},
}
