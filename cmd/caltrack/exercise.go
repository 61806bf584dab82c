package caltrack

import (
	"database/sql"
	"fmt"

	"github.com/bmviana/caltrack/internal/model"
	"github.com/bmviana/caltrack/internal/service"
	"github.com/spf13/cobra"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Manage catalog exercises",
}

var (
	exerciseName    string
	exercisePerHour float64
)

var exerciseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog exercises (built-in and custom)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			cat, err := service.LoadCatalog(sqldb)
			if err != nil {
				return err
			}
			for _, e := range cat.Exercises() {
				origin := "built-in"
				if e.Custom {
					origin = "custom"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-28s %6.0f kcal/h (%s)\n", e.ID, e.Name, e.CaloriesPerHour, origin)
			}
			return nil
		})
	},
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a custom exercise",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			item, err := service.UpsertCustomExercise(sqldb, model.Exercise{
				Name:            exerciseName,
				CaloriesPerHour: exercisePerHour,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added custom exercise %s (%s)\n", item.ID, item.Name)
			return nil
		})
	},
}

var exerciseUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a custom exercise in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			item, err := service.UpsertCustomExercise(sqldb, model.Exercise{
				ID:              args[0],
				Name:            exerciseName,
				CaloriesPerHour: exercisePerHour,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated custom exercise %s\n", item.ID)
			return nil
		})
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a custom exercise (past log entries keep the id)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteCustomExercise(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted custom exercise %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exerciseCmd)
	exerciseCmd.AddCommand(exerciseListCmd)
	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseUpdateCmd)
	exerciseCmd.AddCommand(exerciseDeleteCmd)

	for _, c := range []*cobra.Command{exerciseAddCmd, exerciseUpdateCmd} {
		c.Flags().StringVar(&exerciseName, "name", "", "Exercise name")
		c.Flags().Float64Var(&exercisePerHour, "calories-per-hour", 0, "Calories burned per 60 minutes")
		_ = c.MarkFlagRequired("name")
	}
}
