package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var courseCmd = &cobra.Command{
	Use:   "course <course id>",
	Short: "Show one course with its parsed prerequisite data",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, repo, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close()

		course, err := repo.GetCourseByID(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(course, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}
