package fnclient

import (
	"errors"
	"fmt"
	"net"
	"syscall"
)

var (
	// ErrServerNotRunning indicates the inspection server is not reachable.
	ErrServerNotRunning = errors.New("fn server is not running")
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
)

// APIError is a structured error returned by the server.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is lets callers match not_found responses with errors.Is.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Code == "not_found"
}

// isConnectionRefused reports whether the error is a refused connection.
func isConnectionRefused(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.ECONNREFUSED)
	}
	return false
}
