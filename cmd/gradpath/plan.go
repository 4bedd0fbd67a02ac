package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yigit/gradpath/internal/app/models"
)

var (
	planTargets      []string
	planCompleted    []string
	planInProgress   []string
	planSemesters    int
	planMaxCredits   int
	planAlternatives int
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute alternative semester plans for target courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, repo, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close()

		_, planners := newServices(repo)

		response, err := planners.PlanSemesters(cmd.Context(), models.PlanningRequest{
			TargetCourses:         planTargets,
			NumAlternatives:       planAlternatives,
			SemestersAvailable:    planSemesters,
			MaxCreditsPerSemester: planMaxCredits,
			Student: models.StudentState{
				Completed:  planCompleted,
				InProgress: planInProgress,
			},
		})
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	planCmd.Flags().StringSliceVar(&planTargets, "target", nil, "target course code, repeatable (e.g. \"CS 4820\")")
	planCmd.Flags().StringSliceVar(&planCompleted, "completed", nil, "completed course code, repeatable")
	planCmd.Flags().StringSliceVar(&planInProgress, "in-progress", nil, "in-progress course code, repeatable")
	planCmd.Flags().IntVar(&planSemesters, "semesters", 8, "semesters available")
	planCmd.Flags().IntVar(&planMaxCredits, "max-credits", 18, "maximum credits per semester")
	planCmd.Flags().IntVar(&planAlternatives, "alternatives", 3, "number of alternative plans")
	_ = planCmd.MarkFlagRequired("target")
}
