package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fntrack/fntrack/internal/tracker"
)

var epicCmd = &cobra.Command{
	Use:   "epic",
	Short: "Manage epics",
}

var epicNewCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create a new epic",
	Long: `Create a new epic with the next free number and seed its
specification document. An optional --slug is appended to the identifier
for readability; it never affects ordering.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		slug, _ := cmd.Flags().GetString("slug")

		tr, cleanup, err := openTracker()
		if err != nil {
			handleError(err)
		}
		defer cleanup()

		epic, err := tr.CreateEpic(args[0], slug, resolveActor())
		if err != nil {
			handleError(err)
		}

		printEpic(os.Stdout, &tracker.EpicDetail{Epic: epic, Status: epic.Status}, jsonOutput)
	},
}

var epicShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show epic details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withTasks, _ := cmd.Flags().GetBool("tasks")

		tr, cleanup, err := openTracker()
		if err != nil {
			handleError(err)
		}
		defer cleanup()

		detail, err := tr.ShowEpic(args[0])
		if err != nil {
			handleError(err)
		}
		if !withTasks {
			detail.Tasks = nil
		}

		printEpic(os.Stdout, detail, jsonOutput)
	},
}

var epicListCmd = &cobra.Command{
	Use:   "list",
	Short: "List epics in numeric order",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		status, _ := cmd.Flags().GetString("status")

		tr, cleanup, err := openTracker()
		if err != nil {
			handleError(err)
		}
		defer cleanup()

		epics, err := tr.Store().ListEpics()
		if err != nil {
			handleError(err)
		}

		details := make([]*tracker.EpicDetail, 0, len(epics))
		for _, epic := range epics {
			detail, err := tr.ShowEpic(epic.ID)
			if err != nil {
				handleError(err)
			}
			if status != "" && string(detail.Status) != status {
				continue
			}
			details = append(details, detail)
		}

		printEpicList(os.Stdout, details, jsonOutput)
	},
}

var epicCloseCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Close an epic",
	Long: `Mark an epic done. Every task in the epic must already be done;
--force closes it anyway and records the override in the history.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")

		tr, cleanup, err := openTracker()
		if err != nil {
			handleError(err)
		}
		defer cleanup()

		epic, err := tr.CloseEpic(args[0], resolveActor(), force)
		if err != nil {
			handleError(err)
		}

		printSuccess(os.Stdout, fmt.Sprintf("Closed %s", epic.ID), jsonOutput)
	},
}

var epicDepCmd = &cobra.Command{
	Use:   "dep",
	Short: "Manage epic dependencies",
}

var epicDepAddCmd = &cobra.Command{
	Use:   "add <id> <depends-on-id>",
	Short: "Declare that one epic waits for another",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		tr, cleanup, err := openTracker()
		if err != nil {
			handleError(err)
		}
		defer cleanup()

		if err := tr.AddEpicDependency(args[0], args[1], resolveActor()); err != nil {
			handleError(err)
		}

		printSuccess(os.Stdout, fmt.Sprintf("%s now depends on %s", args[0], args[1]), jsonOutput)
	},
}

var epicDepRmCmd = &cobra.Command{
	Use:   "rm <id> <depends-on-id>",
	Short: "Remove an epic dependency",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		tr, cleanup, err := openTracker()
		if err != nil {
			handleError(err)
		}
		defer cleanup()

		if err := tr.RemoveEpicDependency(args[0], args[1], resolveActor()); err != nil {
			handleError(err)
		}

		printSuccess(os.Stdout, fmt.Sprintf("%s no longer depends on %s", args[0], args[1]), jsonOutput)
	},
}

var epicDepListCmd = &cobra.Command{
	Use:   "list <id>",
	Short: "List an epic's dependencies",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tr, cleanup, err := openTracker()
		if err != nil {
			handleError(err)
		}
		defer cleanup()

		epic, err := tr.Store().GetEpic(args[0])
		if err != nil {
			handleError(err)
		}

		if jsonOutput {
			deps := epic.DependsOn
			if deps == nil {
				deps = []string{}
			}
			printJSON(os.Stdout, "depends_on", deps)
			return
		}
		if len(epic.DependsOn) == 0 {
			fmt.Printf("Epic %s has no dependencies\n", epic.ID)
			return
		}
		for _, dep := range epic.DependsOn {
			fmt.Println(dep)
		}
	},
}

func init() {
	epicNewCmd.Flags().String("slug", "", "Readable slug appended to the identifier")
	epicShowCmd.Flags().Bool("tasks", false, "Include the epic's task table")
	epicListCmd.Flags().String("status", "", "Only epics with this status (todo, in_progress, done)")
	epicCloseCmd.Flags().Bool("force", false, "Close even with open tasks")

	epicDepCmd.AddCommand(epicDepAddCmd)
	epicDepCmd.AddCommand(epicDepRmCmd)
	epicDepCmd.AddCommand(epicDepListCmd)

	epicCmd.AddCommand(epicNewCmd)
	epicCmd.AddCommand(epicShowCmd)
	epicCmd.AddCommand(epicListCmd)
	epicCmd.AddCommand(epicCloseCmd)
	epicCmd.AddCommand(epicDepCmd)

	rootCmd.AddCommand(epicCmd)
}
