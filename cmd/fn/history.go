package main

import (
	"os"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Show the local change history of an epic or task",
	Long: `Print the audit entries recorded for a record, newest first. The
audit log is a local convenience and is not shared through version
control, so the history covers changes made on this machine only.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tr, cleanup, err := openTracker()
		if err != nil {
			handleError(err)
		}
		defer cleanup()

		entries, err := tr.History(args[0])
		if err != nil {
			handleError(err)
		}

		printHistory(os.Stdout, entries, jsonOutput)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
