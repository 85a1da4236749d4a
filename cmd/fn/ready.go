package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fntrack/fntrack/internal/domain"
	"github.com/fntrack/fntrack/internal/tracker"
)

var readyCmd = &cobra.Command{
	Use:   "ready [epic-id]",
	Short: "List tasks that can be started now",
	Long: `List todo tasks whose dependencies are all done. With an epic
identifier the view narrows to that epic; without one it spans every
epic whose own dependencies are done.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tr, cleanup, err := openTracker()
		if err != nil {
			handleError(err)
		}
		defer cleanup()

		var tasks []*domain.Task
		if len(args) == 1 {
			tasks, err = tr.Ready(args[0])
		} else {
			tasks, err = tr.ReadyAll()
		}
		if err != nil {
			handleError(err)
		}

		printTaskList(os.Stdout, readyDetails(tasks), jsonOutput)
	},
}

// readyDetails stamps ready tasks with their todo status directly; their
// dependencies are done by construction.
func readyDetails(tasks []*domain.Task) []*tracker.TaskDetail {
	details := make([]*tracker.TaskDetail, len(tasks))
	for i, task := range tasks {
		details[i] = &tracker.TaskDetail{Task: task, Status: task.Status}
	}
	return details
}

func init() {
	rootCmd.AddCommand(readyCmd)
}
