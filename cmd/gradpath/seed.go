package main

import (
	"github.com/spf13/cobra"
	"github.com/yigit/gradpath/internal/pkg/logger"
	"github.com/yigit/gradpath/internal/seed"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a JSON course catalog into the graph store",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, repo, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close()

		seeder := seed.NewSeeder(repo, cfg.Graph.ConfidenceThreshold, logger.Get())
		return seeder.Run(cmd.Context(), seedFile)
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "catalog.json", "path to the JSON catalog dump")
}
