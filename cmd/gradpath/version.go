package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var bumpSource string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Inspect or bump the graph version",
}

var versionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current graph version and counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, repo, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close()

		graphs, _ := newServices(repo)
		meta, err := graphs.CurrentMetadata(cmd.Context())
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var versionBumpCmd = &cobra.Command{
	Use:   "bump",
	Short: "Increment the graph version, invalidating derived caches",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, repo, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close()

		graphs, _ := newServices(repo)
		version, err := graphs.BumpVersion(cmd.Context(), bumpSource)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "graph version is now v%d\n", version)
		return nil
	},
}

func init() {
	versionBumpCmd.Flags().StringVar(&bumpSource, "source", "manual", "label recorded as the bump source")
	versionCmd.AddCommand(versionShowCmd, versionBumpCmd)
}
