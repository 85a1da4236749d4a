package actor

import "testing"

func TestResolve_EnvOverrideWins(t *testing.T) {
	t.Setenv(EnvVar, "agent-7")
	if got := Resolve(); got != "agent-7" {
		t.Errorf("Resolve() = %q, want agent-7", got)
	}
}

func TestResolve_NeverEmpty(t *testing.T) {
	t.Setenv(EnvVar, "")
	if got := Resolve(); got == "" {
		t.Error("Resolve() must always produce a usable string")
	}
}
