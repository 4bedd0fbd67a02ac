package main

import (
	"github.com/spf13/cobra"
	"github.com/yigit/gradpath/internal/app/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply graph store schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, _, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close()

		return migrations.NewMigrator(database.Pool).Migrate(cmd.Context())
	},
}
