package caltrack

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/bmviana/caltrack/internal/model"
	"github.com/bmviana/caltrack/internal/service"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log foods and exercises for a day",
}

var logFoodCmd = &cobra.Command{
	Use:   "food",
	Short: "Manage a day's food entries",
}

var logExerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Manage a day's exercise entries",
}

var (
	logDate       string
	logSlot       string
	logFoodID     string
	logGrams      float64
	logExerciseID string
	logMinutes    float64
)

var logFoodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a food entry to a meal slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(logDate)
		if err != nil {
			return err
		}
		slot, err := parseMealSlot(logSlot)
		if err != nil {
			return err
		}
		if logGrams <= 0 {
			return fmt.Errorf("--grams must be > 0")
		}
		if strings.TrimSpace(logFoodID) == "" {
			return fmt.Errorf("--food must not be blank")
		}
		return withDB(func(sqldb *sql.DB) error {
			rec, err := service.GetDay(sqldb, date)
			if err != nil {
				return err
			}
			next := service.AddFood(rec, slot, logFoodID, logGrams)
			if next.EntrySeq == rec.EntrySeq {
				return fmt.Errorf("no entry added for food %q", logFoodID)
			}
			if err := service.PutDay(sqldb, next); err != nil {
				return err
			}
			added := next.Meals[slot][len(next.Meals[slot])-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s: %.0fg of %s (entry %d)\n", slot, logGrams, logFoodID, added.ID)
			return nil
		})
	},
}

var logFoodUpdateCmd = &cobra.Command{
	Use:   "update <entry-id>",
	Short: "Replace a food entry by its id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, err := parseEntryIDArg(args[0])
		if err != nil {
			return err
		}
		date, err := parseDateOrToday(logDate)
		if err != nil {
			return err
		}
		slot, err := parseMealSlot(logSlot)
		if err != nil {
			return err
		}
		if logGrams <= 0 {
			return fmt.Errorf("--grams must be > 0")
		}
		if strings.TrimSpace(logFoodID) == "" {
			return fmt.Errorf("--food must not be blank")
		}
		return withDB(func(sqldb *sql.DB) error {
			rec, err := service.GetDay(sqldb, date)
			if err != nil {
				return err
			}
			if !hasFoodEntry(rec, slot, entryID) {
				return fmt.Errorf("entry %d not found in %s on %s", entryID, slot, date)
			}
			next := service.UpdateFood(rec, slot, entryID, logFoodID, logGrams)
			if err := service.PutDay(sqldb, next); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %d in %s on %s\n", entryID, slot, date)
			return nil
		})
	},
}

var logFoodRemoveCmd = &cobra.Command{
	Use:   "remove <entry-id>",
	Short: "Remove a food entry by its id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, err := parseEntryIDArg(args[0])
		if err != nil {
			return err
		}
		date, err := parseDateOrToday(logDate)
		if err != nil {
			return err
		}
		slot, err := parseMealSlot(logSlot)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			rec, err := service.GetDay(sqldb, date)
			if err != nil {
				return err
			}
			if !hasFoodEntry(rec, slot, entryID) {
				return fmt.Errorf("entry %d not found in %s on %s", entryID, slot, date)
			}
			next := service.RemoveFood(rec, slot, entryID)
			if err := service.PutDay(sqldb, next); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %d from %s on %s\n", entryID, slot, date)
			return nil
		})
	},
}

var logExerciseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append an exercise entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(logDate)
		if err != nil {
			return err
		}
		if logMinutes <= 0 {
			return fmt.Errorf("--minutes must be > 0")
		}
		if strings.TrimSpace(logExerciseID) == "" {
			return fmt.Errorf("--exercise must not be blank")
		}
		return withDB(func(sqldb *sql.DB) error {
			rec, err := service.GetDay(sqldb, date)
			if err != nil {
				return err
			}
			next := service.AddExercise(rec, logExerciseID, logMinutes)
			if next.EntrySeq == rec.EntrySeq {
				return fmt.Errorf("no entry added for exercise %q", logExerciseID)
			}
			if err := service.PutDay(sqldb, next); err != nil {
				return err
			}
			added := next.Exercises[len(next.Exercises)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %.0f min of %s (entry %d)\n", logMinutes, logExerciseID, added.ID)
			return nil
		})
	},
}

var logExerciseUpdateCmd = &cobra.Command{
	Use:   "update <entry-id>",
	Short: "Replace an exercise entry by its id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, err := parseEntryIDArg(args[0])
		if err != nil {
			return err
		}
		date, err := parseDateOrToday(logDate)
		if err != nil {
			return err
		}
		if logMinutes <= 0 {
			return fmt.Errorf("--minutes must be > 0")
		}
		if strings.TrimSpace(logExerciseID) == "" {
			return fmt.Errorf("--exercise must not be blank")
		}
		return withDB(func(sqldb *sql.DB) error {
			rec, err := service.GetDay(sqldb, date)
			if err != nil {
				return err
			}
			if !hasExerciseEntry(rec, entryID) {
				return fmt.Errorf("exercise entry %d not found on %s", entryID, date)
			}
			next := service.UpdateExercise(rec, entryID, logExerciseID, logMinutes)
			if err := service.PutDay(sqldb, next); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated exercise entry %d on %s\n", entryID, date)
			return nil
		})
	},
}

var logExerciseRemoveCmd = &cobra.Command{
	Use:   "remove <entry-id>",
	Short: "Remove an exercise entry by its id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, err := parseEntryIDArg(args[0])
		if err != nil {
			return err
		}
		date, err := parseDateOrToday(logDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			rec, err := service.GetDay(sqldb, date)
			if err != nil {
				return err
			}
			if !hasExerciseEntry(rec, entryID) {
				return fmt.Errorf("exercise entry %d not found on %s", entryID, date)
			}
			next := service.RemoveExercise(rec, entryID)
			if err := service.PutDay(sqldb, next); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed exercise entry %d on %s\n", entryID, date)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logFoodCmd)
	logCmd.AddCommand(logExerciseCmd)
	logFoodCmd.AddCommand(logFoodAddCmd)
	logFoodCmd.AddCommand(logFoodUpdateCmd)
	logFoodCmd.AddCommand(logFoodRemoveCmd)
	logExerciseCmd.AddCommand(logExerciseAddCmd)
	logExerciseCmd.AddCommand(logExerciseUpdateCmd)
	logExerciseCmd.AddCommand(logExerciseRemoveCmd)

	for _, c := range []*cobra.Command{logFoodAddCmd, logFoodUpdateCmd, logFoodRemoveCmd, logExerciseAddCmd, logExerciseUpdateCmd, logExerciseRemoveCmd} {
		c.Flags().StringVar(&logDate, "date", "", "Date YYYY-MM-DD (default today)")
	}
	for _, c := range []*cobra.Command{logFoodAddCmd, logFoodUpdateCmd, logFoodRemoveCmd} {
		c.Flags().StringVar(&logSlot, "slot", string(model.Snacks), "Meal slot (breakfast, lunch, dinner, snacks)")
	}
	for _, c := range []*cobra.Command{logFoodAddCmd, logFoodUpdateCmd} {
		c.Flags().StringVar(&logFoodID, "food", "", "Catalog food id")
		c.Flags().Float64Var(&logGrams, "grams", 0, "Quantity in grams")
		_ = c.MarkFlagRequired("food")
		_ = c.MarkFlagRequired("grams")
	}
	for _, c := range []*cobra.Command{logExerciseAddCmd, logExerciseUpdateCmd} {
		c.Flags().StringVar(&logExerciseID, "exercise", "", "Catalog exercise id")
		c.Flags().Float64Var(&logMinutes, "minutes", 0, "Duration in minutes")
		_ = c.MarkFlagRequired("exercise")
		_ = c.MarkFlagRequired("minutes")
	}
}
