package cli

import "errors"

// Exit codes for pytidy.
const (
	// ExitSuccess indicates a clean run.
	ExitSuccess = 0

	// ExitFailure indicates lint found lines that need an empty line, or
	// that the run failed.
	ExitFailure = 1
)

var (
	// ErrLintIssuesFound is returned by lint when any line was flagged.
	ErrLintIssuesFound = errors.New("lint issues found")

	// ErrFilesFailed is returned when --keep-going skipped files that could
	// not be processed. The failures have already been reported.
	ErrFilesFailed = errors.New("some files could not be processed")
)

// IsReported reports whether err only signals the exit code and has already
// been shown to the user.
func IsReported(err error) bool {
	return errors.Is(err, ErrLintIssuesFound) || errors.Is(err, ErrFilesFailed)
}

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}
