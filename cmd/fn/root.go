package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fn",
	Short: "fn epic and task tracker",
	Long: `A file-backed tracker of epics and tasks that lives inside the
repository it tracks. Records are plain JSON files under .fn/, merged
through version control like any other source file.`,
}

// Global flags
var (
	jsonOutput bool
	actorFlag  string
	dirFlag    string
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&actorFlag, "actor", "", "Actor recorded on mutations (overrides FN_ACTOR and config)")
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "Directory containing the .fn data directory (default: walk up from cwd)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitGeneralError)
	}
}
