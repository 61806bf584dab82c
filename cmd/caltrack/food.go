package caltrack

import (
	"database/sql"
	"fmt"

	"github.com/bmviana/caltrack/internal/model"
	"github.com/bmviana/caltrack/internal/service"
	"github.com/spf13/cobra"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Manage catalog foods",
}

var (
	foodName     string
	foodCalories float64
	foodProtein  float64
	foodCarbs    float64
	foodFat      float64
)

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog foods (built-in and custom)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			cat, err := service.LoadCatalog(sqldb)
			if err != nil {
				return err
			}
			for _, f := range cat.Foods() {
				origin := "built-in"
				if f.Custom {
					origin = "custom"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-28s %6.0f kcal | P %.1fg | C %.1fg | F %.1fg per 100g (%s)\n",
					f.ID, f.Name, f.CaloriesPer100g, f.ProteinPer100g, f.CarbsPer100g, f.FatPer100g, origin)
			}
			return nil
		})
	},
}

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a custom food",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			item, err := service.UpsertCustomFood(sqldb, model.Food{
				Name:            foodName,
				CaloriesPer100g: foodCalories,
				ProteinPer100g:  foodProtein,
				CarbsPer100g:    foodCarbs,
				FatPer100g:      foodFat,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added custom food %s (%s)\n", item.ID, item.Name)
			return nil
		})
	},
}

var foodUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a custom food in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			item, err := service.UpsertCustomFood(sqldb, model.Food{
				ID:              args[0],
				Name:            foodName,
				CaloriesPer100g: foodCalories,
				ProteinPer100g:  foodProtein,
				CarbsPer100g:    foodCarbs,
				FatPer100g:      foodFat,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated custom food %s\n", item.ID)
			return nil
		})
	},
}

var foodDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a custom food (past log entries keep the id)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteCustomFood(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted custom food %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodListCmd)
	foodCmd.AddCommand(foodAddCmd)
	foodCmd.AddCommand(foodUpdateCmd)
	foodCmd.AddCommand(foodDeleteCmd)

	for _, c := range []*cobra.Command{foodAddCmd, foodUpdateCmd} {
		c.Flags().StringVar(&foodName, "name", "", "Food name")
		c.Flags().Float64Var(&foodCalories, "calories", 0, "Calories per 100g")
		c.Flags().Float64Var(&foodProtein, "protein", 0, "Protein grams per 100g")
		c.Flags().Float64Var(&foodCarbs, "carbs", 0, "Carb grams per 100g")
		c.Flags().Float64Var(&foodFat, "fat", 0, "Fat grams per 100g")
		_ = c.MarkFlagRequired("name")
	}
}
