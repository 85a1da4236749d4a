package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fntrack/fntrack/internal/domain"
	"github.com/fntrack/fntrack/internal/tracker"
	"github.com/fntrack/fntrack/internal/validate"
)

// printJSON emits the success envelope with the payload under key.
func printJSON(w io.Writer, key string, payload interface{}) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(map[string]interface{}{
		"success": true,
		key:       payload,
	})
}

// printEpic prints a single epic with its inferred status and tasks.
func printEpic(w io.Writer, detail *tracker.EpicDetail, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, "epic", detail)
		return
	}

	epic := detail.Epic
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", epic.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", epic.Title)
	fmt.Fprintf(tw, "Status:\t%s\n", detail.Status)
	if len(epic.DependsOn) > 0 {
		fmt.Fprintf(tw, "Depends On:\t%s\n", joinIDs(epic.DependsOn))
	}
	fmt.Fprintf(tw, "Created:\t%s\n", epic.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(tw, "Updated:\t%s\n", epic.UpdatedAt.Format("2006-01-02 15:04:05"))
	if epic.DoneAt != nil {
		fmt.Fprintf(tw, "Done:\t%s\n", epic.DoneAt.Format("2006-01-02 15:04:05"))
	}
	tw.Flush()

	if len(detail.Tasks) > 0 {
		fmt.Fprintln(w)
		printTaskList(w, taskDetails(detail.Tasks), false)
	}
}

// printEpicList prints a table of epics with their inferred statuses.
func printEpicList(w io.Writer, details []*tracker.EpicDetail, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, "epics", details)
		return
	}

	if len(details) == 0 {
		fmt.Fprintln(w, "No epics found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tTITLE\tSTATUS\tTASKS\n")
	fmt.Fprintf(tw, "--\t-----\t------\t-----\n")
	for _, d := range details {
		done := 0
		for _, task := range d.Tasks {
			if task.Status == domain.StatusDone {
				done++
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\n",
			d.Epic.ID, truncate(d.Epic.Title, 40), d.Status, done, len(d.Tasks))
	}
	tw.Flush()
}

// printTask prints a single task with its display status.
func printTask(w io.Writer, detail *tracker.TaskDetail, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, "task", detail)
		return
	}

	task := detail.Task
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", task.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", task.Title)
	fmt.Fprintf(tw, "Status:\t%s\n", detail.Status)
	if len(task.DependsOn) > 0 {
		fmt.Fprintf(tw, "Depends On:\t%s\n", joinIDs(task.DependsOn))
	}
	if task.Assignee != "" {
		fmt.Fprintf(tw, "Assignee:\t%s\n", task.Assignee)
	}
	if task.ClaimNote != "" {
		fmt.Fprintf(tw, "Claim Note:\t%s\n", task.ClaimNote)
	}
	if task.Summary != "" {
		fmt.Fprintf(tw, "Summary:\t%s\n", task.Summary)
	}
	if task.Evidence != nil && !task.Evidence.Empty() {
		if len(task.Evidence.Commits) > 0 {
			fmt.Fprintf(tw, "Commits:\t%s\n", joinIDs(task.Evidence.Commits))
		}
		if len(task.Evidence.Tests) > 0 {
			fmt.Fprintf(tw, "Tests:\t%s\n", joinIDs(task.Evidence.Tests))
		}
		if len(task.Evidence.Reviews) > 0 {
			fmt.Fprintf(tw, "Reviews:\t%s\n", joinIDs(task.Evidence.Reviews))
		}
	}
	fmt.Fprintf(tw, "Created:\t%s\n", task.CreatedAt.Format("2006-01-02 15:04:05"))
	if task.ClaimedAt != nil {
		fmt.Fprintf(tw, "Claimed:\t%s\n", task.ClaimedAt.Format("2006-01-02 15:04:05"))
	}
	if task.DoneAt != nil {
		fmt.Fprintf(tw, "Done:\t%s\n", task.DoneAt.Format("2006-01-02 15:04:05"))
	}
	tw.Flush()
}

// printTaskList prints a table of tasks with display statuses.
func printTaskList(w io.Writer, details []*tracker.TaskDetail, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, "tasks", details)
		return
	}

	if len(details) == 0 {
		fmt.Fprintln(w, "No tasks found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tTITLE\tSTATUS\tASSIGNEE\n")
	fmt.Fprintf(tw, "--\t-----\t------\t--------\n")
	for _, d := range details {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			d.Task.ID, truncate(d.Task.Title, 40), d.Status, d.Task.Assignee)
	}
	tw.Flush()
}

// printHistory prints audit entries, newest first.
func printHistory(w io.Writer, entries []*domain.AuditEntry, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, "history", entries)
		return
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No history found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "TIME\tACTION\tFIELD\tOLD\tNEW\tBY\n")
	fmt.Fprintf(tw, "----\t------\t-----\t---\t---\t--\n")
	for _, entry := range entries {
		field := ""
		if entry.Field != nil {
			field = *entry.Field
		}
		oldVal := ""
		if entry.OldValue != nil {
			oldVal = truncate(*entry.OldValue, 20)
		}
		newVal := ""
		if entry.NewValue != nil {
			newVal = truncate(*entry.NewValue, 20)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			entry.ChangedAt.Format("2006-01-02 15:04:05"),
			entry.Action,
			field,
			oldVal,
			newVal,
			truncate(entry.ChangedBy, 30))
	}
	tw.Flush()
}

// printValidation prints a validation result.
func printValidation(w io.Writer, result *validate.Result, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, "validation", result)
		return
	}

	fmt.Fprintf(w, "Checked %d epics, %d tasks\n", result.Counts.Epics, result.Counts.Tasks)
	for _, issue := range result.Errors {
		fmt.Fprintf(w, "error: %s\n", issue)
	}
	for _, issue := range result.Warnings {
		fmt.Fprintf(w, "warning: %s\n", issue)
	}
	if result.Valid {
		fmt.Fprintln(w, "OK")
	} else {
		fmt.Fprintf(w, "%d problem(s) found\n", len(result.Errors))
	}
}

// printError prints an error message
func printError(w io.Writer, err error, jsonOutput bool) {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	fmt.Fprintf(w, "Error: %s\n", err.Error())
}

// printSuccess prints a success message
func printSuccess(w io.Writer, message string, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, "message", message)
		return
	}

	fmt.Fprintln(w, message)
}

// taskDetails pairs raw tasks with their display statuses.
func taskDetails(tasks []*domain.Task) []*tracker.TaskDetail {
	done := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		if task.Status == domain.StatusDone {
			done[task.ID] = true
		}
	}
	details := make([]*tracker.TaskDetail, len(tasks))
	for i, task := range tasks {
		details[i] = &tracker.TaskDetail{Task: task, Status: task.DisplayStatus(done)}
	}
	return details
}

func joinIDs(ids []string) string {
	return strings.Join(ids, ", ")
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
