package main

import (
	"os"
	"path/filepath"

	"github.com/fntrack/fntrack/internal/actor"
	"github.com/fntrack/fntrack/internal/audit"
	"github.com/fntrack/fntrack/internal/config"
	"github.com/fntrack/fntrack/internal/store"
	"github.com/fntrack/fntrack/internal/tracker"
)

// locateDataDir resolves the .fn directory path. Precedence: the --dir
// flag, then a data_dir pinned in fn.toml, then walking up from the
// current directory.
func locateDataDir() (string, error) {
	if dirFlag != "" {
		return filepath.Join(dirFlag, store.DirName), nil
	}
	cfg, err := config.DiscoverProjectConfig()
	if err != nil {
		return "", err
	}
	if cfg != nil && cfg.DataDir != "" {
		return cfg.DataDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return store.Discover(cwd)
}

// openCleanup releases whatever the running command opened. handleError
// runs it before exiting, since os.Exit skips deferred calls.
var openCleanup func()

// openTracker opens the store and its local audit log. The caller must
// invoke the returned cleanup function. An unopenable audit log disables
// history but never blocks the operation.
func openTracker() (*tracker.Tracker, func(), error) {
	root, err := locateDataDir()
	if err != nil {
		return nil, nil, err
	}
	s, err := store.Open(root)
	if err != nil {
		return nil, nil, err
	}
	log, err := audit.Open(s.AuditPath())
	if err != nil {
		openCleanup = func() {}
		return tracker.New(s, nil), openCleanup, nil
	}
	openCleanup = func() { log.Close() }
	return tracker.New(s, log), openCleanup, nil
}

// resolveActor picks the acting identity. Precedence: the --actor flag,
// the FN_ACTOR environment variable, the global config, then the git and
// OS fallback chain.
func resolveActor() string {
	if actorFlag != "" {
		return actorFlag
	}
	if v := os.Getenv(actor.EnvVar); v != "" {
		return v
	}
	if cfg, err := config.LoadGlobalConfig(); err == nil && cfg.Actor != "" {
		return cfg.Actor
	}
	return actor.Resolve()
}

// handleError handles an error by printing it and exiting with the appropriate code
func handleError(err error) {
	if err == nil {
		return
	}

	printError(os.Stderr, err, jsonOutput)
	if openCleanup != nil {
		openCleanup()
	}
	os.Exit(ExitGeneralError)
}
