package caltrack

import (
	"database/sql"
	"fmt"

	"github.com/bmviana/caltrack/internal/service"
	"github.com/spf13/cobra"
)

var (
	summaryDays int
	summaryEnd  string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a rolling-window summary ending at a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		end, err := parseDateOrToday(summaryEnd)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			cat, err := service.LoadCatalog(sqldb)
			if err != nil {
				return err
			}
			report, err := service.BuildWindowReport(sqldb, cat, end, summaryDays)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Window: %s to %s (%d days, %d active)\n", report.FromDate, report.ToDate, len(report.Days), report.ActiveDays)
			for _, d := range report.Days {
				fmt.Fprintf(out, "%s  in %6.0f  out %6.0f  net %6.0f  water %5d ml\n",
					d.Date, d.CaloriesIn, d.CaloriesOut, d.NetCalories(), d.WaterMl)
			}
			fmt.Fprintf(out, "Totals: in %.0f kcal | out %.0f kcal | P %.1fg | C %.1fg | F %.1fg | water %d ml\n",
				report.TotalIn, report.TotalOut, report.TotalProteinG, report.TotalCarbsG, report.TotalFatG, report.TotalWaterMl)
			fmt.Fprintf(out, "Daily avg: in %.0f kcal | out %.0f kcal | water %.0f ml\n",
				report.AvgInPerDay, report.AvgOutPerDay, report.AvgWaterPerDay)
			if report.HighestIntake != nil {
				fmt.Fprintf(out, "Highest intake: %s (%.0f kcal)\n", report.HighestIntake.Date, report.HighestIntake.CaloriesIn)
			}
			if report.LowestIntake != nil {
				fmt.Fprintf(out, "Lowest intake: %s (%.0f kcal)\n", report.LowestIntake.Date, report.LowestIntake.CaloriesIn)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().IntVar(&summaryDays, "days", 7, "Window length in days (7 for weekly, 30 for monthly)")
	summaryCmd.Flags().StringVar(&summaryEnd, "end", "", "Last date of the window YYYY-MM-DD (default today)")
}
