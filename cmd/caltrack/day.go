package caltrack

import (
	"database/sql"
	"fmt"

	"github.com/bmviana/caltrack/internal/model"
	"github.com/bmviana/caltrack/internal/service"
	"github.com/spf13/cobra"
)

var dayDate string

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show a day's journal and totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(dayDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			cat, err := service.LoadCatalog(sqldb)
			if err != nil {
				return err
			}
			rec, err := service.GetDay(sqldb, date)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", rec.Date)
			for _, slot := range model.MealSlots() {
				fmt.Fprintf(out, "%s:\n", slot)
				for _, e := range rec.Meals[slot] {
					name := "(unknown)"
					kcal := 0.0
					if f, ok := cat.Food(e.FoodID); ok {
						name = f.Name
						kcal = f.CaloriesPer100g * e.Grams / 100
					}
					fmt.Fprintf(out, "  [%d] %s %.0fg, %.0f kcal\n", e.ID, name, e.Grams, kcal)
				}
			}
			fmt.Fprintln(out, "exercises:")
			for _, e := range rec.Exercises {
				name := "(unknown)"
				kcal := 0.0
				if ex, ok := cat.Exercise(e.ExerciseID); ok {
					name = ex.Name
					kcal = ex.CaloriesPerHour / 60 * e.Minutes
				}
				fmt.Fprintf(out, "  [%d] %s %.0f min, %.0f kcal\n", e.ID, name, e.Minutes, kcal)
			}
			totals := service.ComputeDayTotals(rec, cat)
			fmt.Fprintf(out, "Intake: %.0f kcal | Burned: %.0f kcal | Net: %.0f kcal\n", totals.CaloriesIn, totals.CaloriesOut, totals.NetCalories())
			fmt.Fprintf(out, "Macros: P %.1fg | C %.1fg | F %.1fg\n", totals.ProteinG, totals.CarbsG, totals.FatG)
			fmt.Fprintf(out, "Water: %d ml\n", totals.WaterMl)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(dayCmd)
	dayCmd.Flags().StringVar(&dayDate, "date", "", "Date YYYY-MM-DD (default today)")
}
