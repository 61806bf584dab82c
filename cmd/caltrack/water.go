package caltrack

import (
	"database/sql"
	"fmt"

	"github.com/bmviana/caltrack/internal/service"
	"github.com/spf13/cobra"
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Track water intake for a day",
}

var (
	waterDate string
	waterMl   int
)

var waterSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the day's water volume (clamped to the configured ceiling)",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(waterDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			max, _, err := waterLimits(sqldb)
			if err != nil {
				return err
			}
			rec, err := service.GetDay(sqldb, date)
			if err != nil {
				return err
			}
			next := service.SetWater(rec, waterMl, max)
			if next.WaterMl != rec.WaterMl {
				if err := service.PutDay(sqldb, next); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Water on %s: %d ml (ceiling %d ml)\n", date, next.WaterMl, max)
			return nil
		})
	},
}

var waterAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add one increment of water",
	RunE: func(cmd *cobra.Command, args []string) error {
		return adjustWater(cmd, 1)
	},
}

var waterSubCmd = &cobra.Command{
	Use:   "sub",
	Short: "Remove one increment of water (clamps at zero)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return adjustWater(cmd, -1)
	},
}

var waterShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the day's water volume",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(waterDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			rec, err := service.GetDay(sqldb, date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Water on %s: %d ml\n", date, rec.WaterMl)
			return nil
		})
	},
}

func adjustWater(cmd *cobra.Command, sign int) error {
	date, err := parseDateOrToday(waterDate)
	if err != nil {
		return err
	}
	return withDB(func(sqldb *sql.DB) error {
		max, step, err := waterLimits(sqldb)
		if err != nil {
			return err
		}
		rec, err := service.GetDay(sqldb, date)
		if err != nil {
			return err
		}
		// Clamping can absorb the whole delta; only commit real changes
		// so an absent day stays absent.
		next := service.AddWater(rec, sign*step, max)
		if next.WaterMl != rec.WaterMl {
			if err := service.PutDay(sqldb, next); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Water on %s: %d ml\n", date, next.WaterMl)
		return nil
	})
}

func init() {
	rootCmd.AddCommand(waterCmd)
	waterCmd.AddCommand(waterSetCmd)
	waterCmd.AddCommand(waterAddCmd)
	waterCmd.AddCommand(waterSubCmd)
	waterCmd.AddCommand(waterShowCmd)

	for _, c := range []*cobra.Command{waterSetCmd, waterAddCmd, waterSubCmd, waterShowCmd} {
		c.Flags().StringVar(&waterDate, "date", "", "Date YYYY-MM-DD (default today)")
	}
	waterSetCmd.Flags().IntVar(&waterMl, "ml", 0, "Water volume in milliliters")
	_ = waterSetCmd.MarkFlagRequired("ml")
}
