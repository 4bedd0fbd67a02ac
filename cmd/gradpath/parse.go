package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yigit/gradpath/internal/app/prereq"
)

var parseCmd = &cobra.Command{
	Use:   "parse <prerequisite text>",
	Short: "Parse prerequisite text into a typed AST with confidence",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result := prereq.Parse(strings.Join(args, " "))

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}
