package pyast

import "fmt"

// SyntaxError reports source that is not valid Python at the statement level.
type SyntaxError struct {
	// Line is the 1-based line the error was detected on.
	Line int

	// Msg describes the problem, worded like CPython's messages.
	Msg string
}

// Error implements error.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func syntaxErrorf(line int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
