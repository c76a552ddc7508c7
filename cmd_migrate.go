package main

import (
	"github.com/spf13/cobra"

	"github.com/camden-git/policeportal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		return database.AutoMigrateModels(db, logger)
	},
}
