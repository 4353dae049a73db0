package main

import (
	"errors"
)

// Exit codes returned by xsddemo.
const (
	// ExitSuccess indicates the demonstration completed.
	ExitSuccess = 0

	// ExitFailure indicates a missing binary or schema, or a failed
	// generation. The generator's own failure reasons are not distinguished.
	ExitFailure = 1

	// ExitConfigError indicates an unreadable or invalid configuration.
	ExitConfigError = 2
)

var errConfig = errors.New("configuration error")

// exitCode maps an error returned by the app to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, errConfig):
		return ExitConfigError
	default:
		return ExitFailure
	}
}
