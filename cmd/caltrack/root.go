package caltrack

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "caltrack",
	Short: "caltrack is a food, exercise, and water journal for your terminal",
	Long:  "caltrack is a local-first nutrition and activity journal: log foods per meal, exercises, and water for any day, and view daily or rolling-window statistics.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
