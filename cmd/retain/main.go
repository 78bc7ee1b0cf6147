package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess   = 0 // Run completed with no generation failures
	ExitRunFailed = 1 // One or more generations failed
	ExitError     = 2 // Configuration or runtime error
)

// GenerationFailureError indicates that the benchmark ran to completion,
// but one or more model generations failed.
type GenerationFailureError struct {
	Message string
}

func (e *GenerationFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var genFailureErr *GenerationFailureError
		if errors.As(err, &genFailureErr) {
			os.Exit(ExitRunFailed)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
