package caltrack

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bmviana/caltrack/internal/service"
	"github.com/spf13/cobra"
)

var (
	exportOut string
	importIn  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export custom catalog items and all day records to JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			snap, err := service.ExportSnapshot(sqldb)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal snapshot: %w", err)
			}
			if exportOut == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := os.WriteFile(exportOut, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("write snapshot file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d days, %d custom foods, %d custom exercises to %s\n",
				len(snap.Days), len(snap.CustomFoods), len(snap.CustomExercises), exportOut)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a JSON snapshot (invalid rows are skipped)",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(importIn)
		if err != nil {
			return fmt.Errorf("read snapshot file: %w", err)
		}
		var snap service.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return fmt.Errorf("parse snapshot file: %w", err)
		}
		return withDB(func(sqldb *sql.DB) error {
			max, _, err := waterLimits(sqldb)
			if err != nil {
				return err
			}
			stats, err := service.ImportSnapshot(sqldb, &snap, max)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d days, %d custom foods, %d custom exercises\n", stats.Days, stats.Foods, stats.Exercises)
			if stats.SkippedItems > 0 || stats.SkippedEntries > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d catalog items and %d log entries\n", stats.SkippedItems, stats.SkippedEntries)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default stdout)")
	importCmd.Flags().StringVar(&importIn, "in", "", "Snapshot file to import")
	_ = importCmd.MarkFlagRequired("in")
}
