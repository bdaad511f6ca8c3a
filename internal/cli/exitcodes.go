package cli

import "github.com/yaklabco/modtex/pkg/runner"

// Exit codes for modtex.
const (
	// ExitSuccess indicates every file rendered.
	ExitSuccess = 0

	// ExitFailure indicates a failed render, write, or command.
	ExitFailure = 1
)

// ExitCodeFromResult determines the exit code of a render run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil || !result.HasFailures() {
		return ExitSuccess
	}
	return ExitFailure
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}
