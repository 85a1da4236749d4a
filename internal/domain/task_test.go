package domain

import "testing"

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   bool
	}{
		{"todo is valid", StatusTodo, true},
		{"in_progress is valid", StatusInProgress, true},
		{"done is valid", StatusDone, true},
		{"blocked is not storable", StatusBlocked, false},
		{"empty string is invalid", Status(""), false},
		{"similar but wrong is invalid", Status("Todo"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.want {
				t.Errorf("Status.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewTask(t *testing.T) {
	task := NewTask("fn-1.1", "fn-1", "Wire the parser")

	if task.ID != "fn-1.1" {
		t.Errorf("ID = %q, want fn-1.1", task.ID)
	}
	if task.Epic != "fn-1" {
		t.Errorf("Epic = %q, want fn-1", task.Epic)
	}
	if task.Status != StatusTodo {
		t.Errorf("Status = %q, want todo", task.Status)
	}
	if task.CreatedAt.IsZero() || !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Error("CreatedAt and UpdatedAt should be set and equal")
	}
	if task.Assignee != "" {
		t.Errorf("new task should have no assignee, got %q", task.Assignee)
	}
}

func TestTask_DisplayStatus(t *testing.T) {
	done := map[string]bool{"fn-1.1": true}

	tests := []struct {
		name string
		task Task
		want Status
	}{
		{"todo with no deps", Task{Status: StatusTodo}, StatusTodo},
		{"todo with met dep", Task{Status: StatusTodo, DependsOn: []string{"fn-1.1"}}, StatusTodo},
		{"todo with unmet dep", Task{Status: StatusTodo, DependsOn: []string{"fn-1.2"}}, StatusBlocked},
		{"todo with mixed deps", Task{Status: StatusTodo, DependsOn: []string{"fn-1.1", "fn-1.2"}}, StatusBlocked},
		{"in_progress never shows blocked", Task{Status: StatusInProgress, DependsOn: []string{"fn-1.2"}}, StatusInProgress},
		{"done never shows blocked", Task{Status: StatusDone, DependsOn: []string{"fn-1.2"}}, StatusDone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.DisplayStatus(done); got != tt.want {
				t.Errorf("DisplayStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTask_UnmetDeps(t *testing.T) {
	task := Task{DependsOn: []string{"fn-1.1", "fn-1.2", "fn-1.3"}}
	done := map[string]bool{"fn-1.2": true}

	unmet := task.UnmetDeps(done)
	if len(unmet) != 2 || unmet[0] != "fn-1.1" || unmet[1] != "fn-1.3" {
		t.Errorf("UnmetDeps() = %v, want [fn-1.1 fn-1.3]", unmet)
	}

	if got := task.UnmetDeps(map[string]bool{"fn-1.1": true, "fn-1.2": true, "fn-1.3": true}); got != nil {
		t.Errorf("UnmetDeps() with all done = %v, want nil", got)
	}
}

func TestEvidence_Empty(t *testing.T) {
	if !(Evidence{}).Empty() {
		t.Error("zero evidence should be empty")
	}
	if (Evidence{Commits: []string{"abc123"}}).Empty() {
		t.Error("evidence with a commit should not be empty")
	}
	if (Evidence{Tests: []string{"TestFoo"}}).Empty() {
		t.Error("evidence with a test should not be empty")
	}
	if (Evidence{Reviews: []string{"CR-9"}}).Empty() {
		t.Error("evidence with a review should not be empty")
	}
}
