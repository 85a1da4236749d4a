package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fntrack/fntrack/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate [epic-id]",
	Short: "Check the data directory for structural problems",
	Long: `Run every consistency check: document presence and headings,
dependency existence and scoping, cycles, closed epics with open tasks,
and identifier collisions left behind by branch merges. With an epic
identifier, only that epic and its tasks are checked. Exits non-zero
when any error is found.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tr, cleanup, err := openTracker()
		if err != nil {
			handleError(err)
		}
		defer cleanup()

		v := validate.New(tr.Store())
		var result *validate.Result
		if len(args) == 1 {
			result, err = v.RunEpic(args[0])
		} else {
			result, err = v.Run()
		}
		if err != nil {
			handleError(err)
		}

		printValidation(os.Stdout, result, jsonOutput)
		if !result.Valid {
			cleanup()
			os.Exit(ExitGeneralError)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
