// Package fnclient provides a Go client for the fn inspection API.
//
// The API is read-only: it serves the epics, tasks, readiness view,
// validation results, and local history of one tracked repository.
// Mutations always go through the fn CLI and merge through version
// control.
//
// Create a client and query the ready tasks:
//
//	client, err := fnclient.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tasks, err := client.Ready(ctx, "")
package fnclient
