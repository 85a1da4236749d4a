package main

import (
	"path/filepath"
	"testing"

	"github.com/fntrack/fntrack/internal/actor"
	"github.com/fntrack/fntrack/internal/store"
)

func TestResolveActor_FlagWins(t *testing.T) {
	t.Setenv(actor.EnvVar, "env-actor")
	actorFlag = "flag-actor"
	defer func() { actorFlag = "" }()

	if got := resolveActor(); got != "flag-actor" {
		t.Errorf("resolveActor = %q, want flag-actor", got)
	}
}

func TestResolveActor_EnvWins(t *testing.T) {
	t.Setenv(actor.EnvVar, "env-actor")
	actorFlag = ""

	if got := resolveActor(); got != "env-actor" {
		t.Errorf("resolveActor = %q, want env-actor", got)
	}
}

func TestLocateDataDir_FlagWins(t *testing.T) {
	dirFlag = "/some/base"
	defer func() { dirFlag = "" }()

	got, err := locateDataDir()
	if err != nil {
		t.Fatalf("locateDataDir: %v", err)
	}
	want := filepath.Join("/some/base", store.DirName)
	if got != want {
		t.Errorf("locateDataDir = %q, want %q", got, want)
	}
}

func TestOpenTracker_MissingStore(t *testing.T) {
	dirFlag = t.TempDir()
	defer func() { dirFlag = "" }()

	if _, _, err := openTracker(); err == nil {
		t.Error("expected error for uninitialized directory")
	}
}

func TestOpenTracker_Initialized(t *testing.T) {
	base := t.TempDir()
	if _, err := store.Init(filepath.Join(base, store.DirName)); err != nil {
		t.Fatalf("Init: %v", err)
	}

	dirFlag = base
	defer func() { dirFlag = "" }()

	tr, cleanup, err := openTracker()
	if err != nil {
		t.Fatalf("openTracker: %v", err)
	}
	defer cleanup()

	if tr.Store().Root() != filepath.Join(base, store.DirName) {
		t.Errorf("store root = %q", tr.Store().Root())
	}
}

func TestOpenTracker_RegistersCleanup(t *testing.T) {
	base := t.TempDir()
	if _, err := store.Init(filepath.Join(base, store.DirName)); err != nil {
		t.Fatalf("Init: %v", err)
	}

	dirFlag = base
	defer func() { dirFlag = "" }()
	openCleanup = nil

	_, cleanup, err := openTracker()
	if err != nil {
		t.Fatalf("openTracker: %v", err)
	}
	defer cleanup()

	// Error exits bypass deferred calls, so the cleanup must also be
	// reachable through the package hook handleError uses.
	if openCleanup == nil {
		t.Fatal("openTracker did not register its cleanup")
	}
}
