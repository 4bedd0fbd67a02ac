package main

import (
	"github.com/spf13/cobra"
	"github.com/yigit/gradpath/internal/app/graph"
	"github.com/yigit/gradpath/internal/app/planner"
	"github.com/yigit/gradpath/internal/app/repositories"
	"github.com/yigit/gradpath/internal/app/services"
	"github.com/yigit/gradpath/internal/config"
	"github.com/yigit/gradpath/internal/db"
	"github.com/yigit/gradpath/internal/pkg/logger"
)

var (
	cfgPath string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "gradpath",
	Short:         "Course prerequisite graph and degree planning toolkit",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig(cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Configure(logger.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to the configuration file")
	rootCmd.AddCommand(planCmd, parseCmd, versionCmd, migrateCmd, seedCmd, courseCmd)
}

// openStore connects to Postgres and returns the pool together with the
// graph repository bound to it. Callers must Close the returned database.
func openStore() (*db.PostgresDB, *repositories.GraphRepository, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return database, repositories.NewGraphRepository(database.Pool), nil
}

// newServices wires the planning stack over a store.
func newServices(store services.GraphStore) (*services.GraphService, *services.PlannerService) {
	builder := graph.NewBuilder(cfg.Graph.ConfidenceThreshold)
	graphs := services.NewGraphService(store, builder, cfg.MetadataTTL())
	limits := planner.Limits{
		MaxAlternatives:       cfg.Planner.MaxAlternatives,
		MaxSemesters:          cfg.Planner.MaxSemesters,
		MaxCreditsPerSemester: cfg.Planner.MaxCreditsPerSemester,
		MaxTargetCourses:      cfg.Planner.MaxTargetCourses,
		MaxCompletedCourses:   cfg.Planner.MaxCompletedCourses,
	}
	return graphs, services.NewPlannerService(graphs, limits)
}
