package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fntrack/fntrack/internal/domain"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskNewCmd = &cobra.Command{
	Use:   "new <epic-id> <title>",
	Short: "Create a new task under an epic",
	Long: `Create a task with the next free sequence number under the epic.
Dependencies declared with --dep must name tasks in the same epic.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		deps, _ := cmd.Flags().GetStringSlice("dep")

		tr, cleanup, err := openTracker()
		if err != nil {
			handleError(err)
		}
		defer cleanup()

		task, err := tr.CreateTask(args[0], args[1], deps, resolveActor())
		if err != nil {
			handleError(err)
		}

		detail, err := tr.ShowTask(task.ID)
		if err != nil {
			handleError(err)
		}
		printTask(os.Stdout, detail, jsonOutput)
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tr, cleanup, err := openTracker()
		if err != nil {
			handleError(err)
		}
		defer cleanup()

		detail, err := tr.ShowTask(args[0])
		if err != nil {
			handleError(err)
		}

		printTask(os.Stdout, detail, jsonOutput)
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list <epic-id>",
	Short: "List an epic's tasks in sequence order",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		status, _ := cmd.Flags().GetString("status")

		tr, cleanup, err := openTracker()
		if err != nil {
			handleError(err)
		}
		defer cleanup()

		epic, err := tr.Store().GetEpic(args[0])
		if err != nil {
			handleError(err)
		}
		tasks, err := tr.Store().ListTasks(epic.ID)
		if err != nil {
			handleError(err)
		}

		details := taskDetails(tasks)
		if status != "" {
			filtered := details[:0]
			for _, d := range details {
				if string(d.Status) == status {
					filtered = append(filtered, d)
				}
			}
			details = filtered
		}

		printTaskList(os.Stdout, details, jsonOutput)
	},
}

var taskStartCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Claim a task and begin work",
	Long: `Claim a task for the acting identity and move it to in_progress.
The task must be todo with every dependency done. Starting a task you
already hold is a no-op; --force takes over someone else's claim or
starts past unmet dependencies, recording the override.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		note, _ := cmd.Flags().GetString("note")

		tr, cleanup, err := openTracker()
		if err != nil {
			handleError(err)
		}
		defer cleanup()

		task, err := tr.Start(args[0], resolveActor(), force, note)
		if err != nil {
			handleError(err)
		}

		printSuccess(os.Stdout, fmt.Sprintf("Started %s (assignee %s)", task.ID, task.Assignee), jsonOutput)
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Complete a task",
	Long: `Mark an in_progress task done. A completion summary is required;
evidence links are recorded as given. --force bypasses the claim and
summary checks and records the override.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		summary, _ := cmd.Flags().GetString("summary")
		commits, _ := cmd.Flags().GetStringSlice("commit")
		tests, _ := cmd.Flags().GetStringSlice("test")
		reviews, _ := cmd.Flags().GetStringSlice("review")

		tr, cleanup, err := openTracker()
		if err != nil {
			handleError(err)
		}
		defer cleanup()

		evidence := domain.Evidence{Commits: commits, Tests: tests, Reviews: reviews}
		task, err := tr.Complete(args[0], resolveActor(), summary, evidence, force)
		if err != nil {
			handleError(err)
		}

		printSuccess(os.Stdout, fmt.Sprintf("Completed %s", task.ID), jsonOutput)
	},
}

var taskReleaseCmd = &cobra.Command{
	Use:   "release <id>",
	Short: "Release a claimed task back to todo",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")

		tr, cleanup, err := openTracker()
		if err != nil {
			handleError(err)
		}
		defer cleanup()

		task, err := tr.Release(args[0], resolveActor(), force)
		if err != nil {
			handleError(err)
		}

		printSuccess(os.Stdout, fmt.Sprintf("Released %s", task.ID), jsonOutput)
	},
}

func init() {
	taskNewCmd.Flags().StringSlice("dep", nil, "Task this one depends on (repeatable)")
	taskListCmd.Flags().String("status", "", "Only tasks with this status (todo, in_progress, done, blocked)")
	taskStartCmd.Flags().Bool("force", false, "Take over a claim or start past unmet dependencies")
	taskStartCmd.Flags().String("note", "", "Note recorded with the claim")
	taskDoneCmd.Flags().Bool("force", false, "Complete regardless of claim and summary checks")
	taskDoneCmd.Flags().String("summary", "", "What was done")
	taskDoneCmd.Flags().StringSlice("commit", nil, "Commit hash as evidence (repeatable)")
	taskDoneCmd.Flags().StringSlice("test", nil, "Test reference as evidence (repeatable)")
	taskDoneCmd.Flags().StringSlice("review", nil, "Review link as evidence (repeatable)")
	taskReleaseCmd.Flags().Bool("force", false, "Release someone else's claim")

	taskCmd.AddCommand(taskNewCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskStartCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskReleaseCmd)

	rootCmd.AddCommand(taskCmd)
}
