package caltrack

import (
	"database/sql"
	"fmt"

	"github.com/bmviana/caltrack/internal/service"
	"github.com/spf13/cobra"
)

var doctorPrune bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the journal for dangling references and orphan rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			max, _, err := waterLimits(sqldb)
			if err != nil {
				return err
			}
			report, err := service.RunDoctor(sqldb, max, doctorPrune)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Dangling food references: %d\n", report.DanglingFoodRefs)
			fmt.Fprintf(out, "Dangling exercise references: %d\n", report.DanglingExerciseRefs)
			fmt.Fprintf(out, "Orphan meal rows: %d\n", report.OrphanMealRows)
			fmt.Fprintf(out, "Orphan exercise rows: %d\n", report.OrphanExerciseRows)
			fmt.Fprintf(out, "Days over water ceiling: %d\n", report.DaysOverWaterLimit)
			if doctorPrune {
				fmt.Fprintf(out, "Pruned rows: %d\n", report.PrunedRows)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorPrune, "prune", false, "Delete orphan entry rows")
}
